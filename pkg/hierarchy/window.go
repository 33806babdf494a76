package hierarchy

import (
	"math"

	errs "github.com/matzehuels/treepage/pkg/errors"
)

// Window selects a page of the flattened sequence.
//
// Page is 1-based and PerPage is the number of visits per page. A zero
// Page or PerPage disables pagination. The zero value is the unpaged window.
type Window struct {
	Page    int
	PerPage int
}

// NewWindow validates page and perPage and returns the window.
// Negative values are rejected with a *errors.ValidationError.
func NewWindow(page, perPage int) (Window, error) {
	if err := errs.ValidatePage(page); err != nil {
		return Window{}, err
	}
	if err := errs.ValidatePerPage(perPage); err != nil {
		return Window{}, err
	}
	return Window{Page: page, PerPage: perPage}, nil
}

// ParseWindow parses page and perPage from user input. Empty strings are
// treated as zero. Non-numeric or negative values are rejected with a
// *errors.ValidationError.
func ParseWindow(page, perPage string) (Window, error) {
	p, err := errs.ParsePage(page)
	if err != nil {
		return Window{}, err
	}
	n, err := errs.ParsePerPage(perPage)
	if err != nil {
		return Window{}, err
	}
	return Window{Page: p, PerPage: n}, nil
}

// Paged reports whether the window restricts output to a page.
func (w Window) Paged() bool { return w.Page > 0 && w.PerPage > 0 }

// Offset returns the visit count at which the page opens.
// It is 0 for an unpaged window and saturates at math.MaxInt when the page
// lies beyond any addressable count.
func (w Window) Offset() int {
	if !w.Paged() {
		return 0
	}
	if w.overflows() {
		return math.MaxInt
	}
	return (w.Page - 1) * w.PerPage
}

// End returns the visit count at which the page closes (exclusive).
// It is -1 for an unpaged window and saturates like Offset.
func (w Window) End() int {
	if !w.Paged() {
		return -1
	}
	if w.overflows() {
		return math.MaxInt
	}
	return w.Offset() + w.PerPage
}

// overflows reports whether Page*PerPage does not fit in an int.
func (w Window) overflows() bool {
	return w.Page-1 > (math.MaxInt-w.PerPage)/w.PerPage
}

// Contains reports whether the visit count falls inside the window.
func (w Window) Contains(count int) bool {
	if !w.Paged() {
		return true
	}
	return count >= w.Offset() && count < w.End()
}

// Exhausted reports whether no further visit can land inside the window.
func (w Window) Exhausted(count int) bool {
	return w.Paged() && count >= w.End()
}

// Pages returns how many pages are needed to cover total visits.
// It is 1 for an unpaged window.
func (w Window) Pages(total int) int {
	if !w.Paged() {
		return 1
	}
	if total <= 0 {
		return 0
	}
	return (total-1)/w.PerPage + 1
}

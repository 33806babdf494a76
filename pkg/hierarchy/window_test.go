package hierarchy

import (
	"math"
	"strconv"
	"testing"

	errs "github.com/matzehuels/treepage/pkg/errors"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name   string
		w      Window
		paged  bool
		offset int
		end    int
	}{
		{"zero", Window{}, false, 0, -1},
		{"page only", Window{Page: 3}, false, 0, -1},
		{"per-page only", Window{PerPage: 10}, false, 0, -1},
		{"first", Window{Page: 1, PerPage: 10}, true, 0, 10},
		{"third", Window{Page: 3, PerPage: 10}, true, 20, 30},
		{"huge page saturates", Window{Page: math.MaxInt/4 + 1, PerPage: 8}, true, math.MaxInt, math.MaxInt},
		{"huge per-page saturates", Window{Page: 2, PerPage: math.MaxInt}, true, math.MaxInt, math.MaxInt},
		{"first page of max size", Window{Page: 1, PerPage: math.MaxInt}, true, 0, math.MaxInt},
		{"last addressable page", Window{Page: math.MaxInt, PerPage: 1}, true, math.MaxInt - 1, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Paged(); got != tt.paged {
				t.Errorf("Paged() = %v, want %v", got, tt.paged)
			}
			if got := tt.w.Offset(); got != tt.offset {
				t.Errorf("Offset() = %d, want %d", got, tt.offset)
			}
			if got := tt.w.End(); got != tt.end {
				t.Errorf("End() = %d, want %d", got, tt.end)
			}
		})
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Page: 2, PerPage: 5}
	for count, want := range map[int]bool{0: false, 4: false, 5: true, 9: true, 10: false} {
		if got := w.Contains(count); got != want {
			t.Errorf("Contains(%d) = %v, want %v", count, got, want)
		}
	}
	if w.Exhausted(9) || !w.Exhausted(10) {
		t.Error("Exhausted() should flip at End")
	}
	if (Window{}).Exhausted(1 << 30) {
		t.Error("unpaged window is never exhausted")
	}
}

func TestWindowPages(t *testing.T) {
	w := Window{Page: 1, PerPage: 4}
	for total, want := range map[int]int{0: 0, 1: 1, 4: 1, 5: 2, 9: 3} {
		if got := w.Pages(total); got != want {
			t.Errorf("Pages(%d) = %d, want %d", total, got, want)
		}
	}
	if got := (Window{}).Pages(100); got != 1 {
		t.Errorf("unpaged Pages() = %d, want 1", got)
	}
	if got := (Window{Page: 1, PerPage: math.MaxInt}).Pages(3); got != 1 {
		t.Errorf("Pages() with max per-page = %d, want 1", got)
	}
}

func TestWindowFarPastTheEnd(t *testing.T) {
	w, err := ParseWindow(strconv.Itoa(math.MaxInt/4+1), "8")
	if err != nil {
		t.Fatalf("ParseWindow() error = %v", err)
	}
	for _, count := range []int{0, 7, 1 << 20} {
		if w.Contains(count) {
			t.Errorf("Contains(%d) = true for page %d", count, w.Page)
		}
	}
	if w.Exhausted(0) {
		t.Error("Exhausted(0) = true, want the walk to run")
	}
}

func TestNewWindow(t *testing.T) {
	if _, err := NewWindow(-1, 10); !errs.Is(err, errs.ErrCodeInvalidPage) {
		t.Errorf("NewWindow(-1, 10) error = %v, want %s", err, errs.ErrCodeInvalidPage)
	}
	if _, err := NewWindow(1, -10); !errs.Is(err, errs.ErrCodeInvalidPerPage) {
		t.Errorf("NewWindow(1, -10) error = %v, want %s", err, errs.ErrCodeInvalidPerPage)
	}
	w, err := NewWindow(2, 25)
	if err != nil || w != (Window{Page: 2, PerPage: 25}) {
		t.Errorf("NewWindow(2, 25) = %+v, %v", w, err)
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		page, perPage string
		want          Window
		wantCode      errs.Code
	}{
		{"", "", Window{}, ""},
		{"2", "10", Window{Page: 2, PerPage: 10}, ""},
		{"x", "10", Window{}, errs.ErrCodeInvalidPage},
		{"1", "ten", Window{}, errs.ErrCodeInvalidPerPage},
		{"1", "-1", Window{}, errs.ErrCodeInvalidPerPage},
	}
	for _, tt := range tests {
		got, err := ParseWindow(tt.page, tt.perPage)
		if tt.wantCode != "" {
			if !errs.Is(err, tt.wantCode) {
				t.Errorf("ParseWindow(%q, %q) error = %v, want %s", tt.page, tt.perPage, err, tt.wantCode)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseWindow(%q, %q) = %+v, %v, want %+v", tt.page, tt.perPage, got, err, tt.want)
		}
	}
}

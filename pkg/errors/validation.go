package errors

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Pagination field names used in ValidationError.Field.
const (
	FieldPage    = "page"
	FieldPerPage = "per_page"
)

// maxNodeIDLength bounds record identifiers accepted from external stores.
const maxNodeIDLength = 256

// ValidatePage checks a page number. Zero means "no pagination".
func ValidatePage(page int) error {
	if page < 0 {
		return &ValidationError{Field: FieldPage, Value: strconv.Itoa(page), Reason: "needs to be >= 0"}
	}
	return nil
}

// ValidatePerPage checks an items-per-page count. Zero means "no pagination".
func ValidatePerPage(perPage int) error {
	if perPage < 0 {
		return &ValidationError{Field: FieldPerPage, Value: strconv.Itoa(perPage), Reason: "needs to be >= 0"}
	}
	return nil
}

// ParsePage parses a page number from user input.
// An empty string is treated as 0. Non-numeric and negative values are
// rejected with a *ValidationError.
func ParsePage(s string) (int, error) {
	return parseCount(FieldPage, s)
}

// ParsePerPage parses an items-per-page count from user input.
// An empty string is treated as 0. Non-numeric and negative values are
// rejected with a *ValidationError.
func ParsePerPage(s string) (int, error) {
	return parseCount(FieldPerPage, s)
}

// parseCount accepts whole numbers, including float spellings such as
// "2.0" or "1e1". Values beyond the int range saturate at math.MaxInt.
func parseCount(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		overflow := errors.Is(ferr, strconv.ErrRange)
		if ferr != nil && !overflow || math.IsNaN(f) || math.IsInf(f, 0) && !overflow {
			return 0, &ValidationError{Field: field, Value: s, Reason: "needs to be numeric"}
		}
		if f != math.Trunc(f) {
			return 0, &ValidationError{Field: field, Value: s, Reason: "needs to be a whole number"}
		}
		switch {
		case f < 0:
			n = -1
		case f >= math.MaxInt:
			n = math.MaxInt
		default:
			n = int(f)
		}
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Value: s, Reason: "needs to be >= 0"}
	}
	return n, nil
}

// ValidateNodeID validates a record identifier read from an external store.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node id cannot be empty")
	}
	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNode, "node id too long (max %d characters)", maxNodeIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node id contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a record file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateChoice checks that value is one of allowed, returning an error
// with the given code listing the accepted values otherwise.
func ValidateChoice(code Code, field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}

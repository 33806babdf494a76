package errors

import (
	"math"
	"strings"
	"testing"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"empty means unpaged", "", 0, false},
		{"zero", "0", 0, false},
		{"first page", "1", 1, false},
		{"padded", " 12 ", 12, false},
		{"integral float", "2.0", 2, false},
		{"exponent", "1e1", 10, false},
		{"beyond int range", "99999999999999999999", math.MaxInt, false},

		{"negative", "-1", 0, true},
		{"non-numeric", "two", 0, true},
		{"fraction", "1.5", 0, true},
		{"negative float", "-2.0", 0, true},
		{"infinity", "Inf", 0, true},
		{"not a number", "NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidPage) {
					t.Errorf("ParsePage(%q) returned wrong error code: %v", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParsePage(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePerPage(t *testing.T) {
	if n, err := ParsePerPage("25"); err != nil || n != 25 {
		t.Errorf("ParsePerPage(25) = %d, %v, want 25, nil", n, err)
	}
	_, err := ParsePerPage("lots")
	if !Is(err, ErrCodeInvalidPerPage) {
		t.Errorf("ParsePerPage(lots) error = %v, want %s", err, ErrCodeInvalidPerPage)
	}
	_, err = ParsePerPage("-3")
	if !IsValidation(err) {
		t.Errorf("ParsePerPage(-3) error = %v, want ValidationError", err)
	}
}

func TestValidatePageAndPerPage(t *testing.T) {
	if err := ValidatePage(0); err != nil {
		t.Errorf("ValidatePage(0) = %v, want nil", err)
	}
	if err := ValidatePage(-2); !Is(err, ErrCodeInvalidPage) {
		t.Errorf("ValidatePage(-2) = %v, want %s", err, ErrCodeInvalidPage)
	}
	if err := ValidatePerPage(10); err != nil {
		t.Errorf("ValidatePerPage(10) = %v, want nil", err)
	}
	if err := ValidatePerPage(-1); !Is(err, ErrCodeInvalidPerPage) {
		t.Errorf("ValidatePerPage(-1) = %v, want %s", err, ErrCodeInvalidPerPage)
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "page-1", false},
		{"uuid", "0b8e2f0c-55c4-4d7a-9f5e-3c1d2b4a6e7f", false},
		{"unicode", "über", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNode) {
				t.Errorf("ValidateNodeID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "records.json", false},
		{"absolute", "/var/lib/treepage/records.db", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateChoice(t *testing.T) {
	allowed := []string{"text", "json"}
	if err := ValidateChoice(ErrCodeInvalidFormat, "format", "json", allowed); err != nil {
		t.Errorf("ValidateChoice(json) = %v, want nil", err)
	}
	err := ValidateChoice(ErrCodeInvalidFormat, "format", "html", allowed)
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("ValidateChoice(html) = %v, want %s", err, ErrCodeInvalidFormat)
	}
	if !strings.Contains(err.Error(), "text, json") {
		t.Errorf("ValidateChoice(html) message = %q, should list allowed values", err.Error())
	}
}

package render

import (
	"strings"

	errs "github.com/matzehuels/treepage/pkg/errors"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatChoices Format = "choices"
	FormatDOT     Format = "dot"
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
	FormatPDF     Format = "pdf"
)

// Formats returns every supported format name.
func Formats() []string {
	return []string{
		string(FormatText), string(FormatJSON), string(FormatChoices),
		string(FormatDOT), string(FormatSVG), string(FormatPNG), string(FormatPDF),
	}
}

// ParseFormat validates a format name, ignoring case. An empty name is
// the text format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatText, nil
	}
	if err := errs.ValidateChoice(errs.ErrCodeInvalidFormat, "format", s, Formats()); err != nil {
		return "", err
	}
	return Format(s), nil
}

// Binary reports whether the format produces non-text bytes.
func (f Format) Binary() bool {
	return f == FormatPNG || f == FormatPDF
}

// Ext returns the conventional file extension, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatChoices:
		return ".json"
	default:
		return "." + string(f)
	}
}

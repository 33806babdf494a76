package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/hierarchy"
)

// Format identifies a record file codec.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the codec for path from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported record file %q (want .json, .yaml or .yml)", path)
	}
}

// ReadJSON decodes a JSON record file from r.
//
// ReadJSON returns an error if the JSON is malformed, a record has an invalid
// id or an id appears twice. It does not close r.
func ReadJSON(r io.Reader) ([]*hierarchy.Record, error) {
	var data file
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return data.toRecords()
}

// ReadYAML decodes a YAML record file from r. It applies the same checks
// as [ReadJSON].
func ReadYAML(r io.Reader) ([]*hierarchy.Record, error) {
	var data file
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return data.toRecords()
}

// Import reads the record file at path, choosing the codec by extension.
func Import(path string) ([]*hierarchy.Record, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatYAML {
		return ReadYAML(f)
	}
	return ReadJSON(f)
}

func (f file) toRecords() ([]*hierarchy.Record, error) {
	out := make([]*hierarchy.Record, 0, len(f.Records))
	seen := make(map[string]bool, len(f.Records))
	for i, r := range f.Records {
		if err := errs.ValidateNodeID(r.ID); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("record %s: %w", r.ID, hierarchy.ErrDuplicateNodeID)
		}
		seen[r.ID] = true
		out = append(out, r.toRecord())
	}
	return out, nil
}

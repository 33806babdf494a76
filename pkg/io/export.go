package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treepage/pkg/hierarchy"
)

type file struct {
	Records []record `json:"records" yaml:"records"`
}

type record struct {
	ID     string             `json:"id" yaml:"id"`
	Parent string             `json:"parent,omitempty" yaml:"parent,omitempty"`
	Title  string             `json:"title,omitempty" yaml:"title,omitempty"`
	Meta   hierarchy.Metadata `json:"meta,omitempty" yaml:"meta,omitempty"`
}

func fromRecord(r *hierarchy.Record) record {
	return record{ID: r.ID(), Parent: r.ParentID(), Title: r.Title, Meta: r.Meta}
}

func (r record) toRecord() *hierarchy.Record {
	out := hierarchy.NewRecord(r.ID, r.Parent)
	out.Title = r.Title
	if r.Meta != nil {
		out.Meta = r.Meta
	}
	return out
}

func toFile(recs []*hierarchy.Record) file {
	out := file{Records: make([]record, 0, len(recs))}
	for _, r := range recs {
		if r != nil {
			out.Records = append(out.Records, fromRecord(r))
		}
	}
	return out
}

// WriteJSON encodes records as an indented JSON record file.
// The output can be re-read with [ReadJSON].
func WriteJSON(recs []*hierarchy.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toFile(recs)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes records as a YAML record file.
func WriteYAML(recs []*hierarchy.Record, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toFile(recs)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Export writes records to path, choosing the codec by extension.
func Export(recs []*hierarchy.Record, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatYAML {
		return WriteYAML(recs, f)
	}
	return WriteJSON(recs, f)
}

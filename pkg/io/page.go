package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/treepage/pkg/hierarchy"
)

// PageDoc is the JSON shape of a sorted page.
type PageDoc struct {
	Page      int       `json:"page"`
	PerPage   int       `json:"per_page"`
	Visited   int       `json:"visited"`
	Ancestors int       `json:"ancestors,omitempty"`
	Orphans   int       `json:"orphans,omitempty"`
	Orphaned  []string  `json:"orphaned,omitempty"`
	Repaired  []string  `json:"repaired,omitempty"`
	Nodes     []PageRow `json:"nodes"`
}

// PageRow is one emitted node.
type PageRow struct {
	ID        string             `json:"id"`
	Parent    string             `json:"parent,omitempty"`
	Title     string             `json:"title"`
	Level     int                `json:"level"`
	Auxiliary bool               `json:"auxiliary,omitempty"`
	Missing   bool               `json:"missing,omitempty"` // placeholder for an absent parent
	Context   bool               `json:"context,omitempty"` // back-filled ancestor
	Meta      hierarchy.Metadata `json:"meta,omitempty"`
}

// NewPageDoc converts a page to its JSON shape. The first p.Ancestors nodes
// are flagged as context.
func NewPageDoc(p hierarchy.Page) PageDoc {
	doc := PageDoc{
		Page:      p.Window.Page,
		PerPage:   p.Window.PerPage,
		Visited:   p.Visited,
		Ancestors: p.Ancestors,
		Orphans:   p.Orphans,
		Orphaned:  p.Orphaned,
		Nodes:     make([]PageRow, len(p.Nodes)),
	}
	for _, n := range p.Repaired {
		doc.Repaired = append(doc.Repaired, n.ID())
	}
	for i, n := range p.Nodes {
		row := PageRow{
			ID:        n.ID(),
			Parent:    n.ParentID(),
			Title:     hierarchy.LabelOf(n),
			Level:     n.Level(),
			Auxiliary: hierarchy.IsAuxiliary(n),
			Missing:   p.Missing(n),
			Context:   i < p.Ancestors,
		}
		if r, ok := n.(*hierarchy.Record); ok && len(r.Meta) > 0 {
			row.Meta = r.Meta
		}
		doc.Nodes[i] = row
	}
	return doc
}

// WritePage encodes a sorted page as indented JSON.
func WritePage(p hierarchy.Page, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewPageDoc(p)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteChoices encodes select-input choices as indented JSON.
func WriteChoices(choices []hierarchy.Choice, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(choices); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

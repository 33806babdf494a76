// Package text renders a sorted page as an indented outline.
//
//	home
//	  about
//	    team
//	  contact
//
// Back-filled ancestors and synthesized roots are dimmed when color is on,
// and marked with a suffix when it is off, so piped output stays readable.
package text

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treepage/pkg/hierarchy"
)

// Options configures the outline.
type Options struct {
	// Indent is repeated once per level. Defaults to two spaces.
	Indent string
	// Color enables lipgloss styling.
	Color bool
	// ShowIDs appends the record id when it differs from the label.
	ShowIDs bool
	// Footer appends a summary line with the pagination counters.
	Footer bool
}

var (
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleRoot    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleContext = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleAux     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240"))
	styleAnchor  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("36"))
	styleID      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleFooter  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Render returns the outline of p.
func Render(p hierarchy.Page, opts Options) []byte {
	if opts.Indent == "" {
		opts.Indent = "  "
	}

	var b strings.Builder
	for i, n := range p.Nodes {
		b.WriteString(strings.Repeat(opts.Indent, max(n.Level(), 0)))
		b.WriteString(line(n, i < p.Ancestors, p.Missing(n), opts))
		b.WriteByte('\n')
	}
	if opts.Footer {
		b.WriteString(footer(p, opts))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// line renders one node. Anchors synthesized for absent parents are marked
// missing; anchors that resolved to a real record only lost their place in
// the input.
func line(n hierarchy.Node, context, missing bool, opts Options) string {
	label := hierarchy.LabelOf(n)
	aux := hierarchy.IsAuxiliary(n)

	var s string
	switch {
	case !opts.Color:
		s = label
		switch {
		case missing:
			s += " (missing)"
		case aux:
			s += " (anchor)"
		}
		if context {
			s += " ..."
		}
	case missing:
		s = styleAux.Render(label)
	case aux:
		s = styleAnchor.Render(label)
	case context:
		s = styleContext.Render(label)
	case n.Level() == 0:
		s = styleRoot.Render(label)
	default:
		s = styleLabel.Render(label)
	}

	if opts.ShowIDs && label != n.ID() {
		id := "[" + n.ID() + "]"
		if opts.Color {
			id = styleID.Render(id)
		}
		s += " " + id
	}
	return s
}

func footer(p hierarchy.Page, opts Options) string {
	var parts []string
	if p.Window.Paged() {
		parts = append(parts, fmt.Sprintf("page %d, %d per page", p.Window.Page, p.Window.PerPage))
	}
	parts = append(parts, fmt.Sprintf("%d shown", len(p.Nodes)-p.Ancestors))
	if p.Ancestors > 0 {
		parts = append(parts, fmt.Sprintf("%d context", p.Ancestors))
	}
	if p.Orphans > 0 {
		parts = append(parts, fmt.Sprintf("%d orphaned", p.Orphans))
	}
	if n := len(p.Repaired); n > 0 {
		parts = append(parts, fmt.Sprintf("%d repaired", n))
	}
	s := strings.Join(parts, " · ")
	if opts.Color {
		return styleFooter.Render(s)
	}
	return s
}

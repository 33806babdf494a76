package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treepage/pkg/hierarchy"
	"github.com/matzehuels/treepage/pkg/pipeline"
	"github.com/matzehuels/treepage/pkg/render/text"
)

// Browser styles
var (
	browseHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	browseErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// browseCommand creates the interactive pager.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		src     sourceFlags
		perPage int
		match   string
	)

	cmd := &cobra.Command{
		Use:   "browse [dsn]",
		Short: "Page through a record store interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var dsn string
			if len(args) > 0 {
				dsn = args[0]
			}
			s, err := c.openSource(ctx, dsn, src)
			if err != nil {
				return err
			}
			defer s.Close()

			recs, err := s.Load(ctx)
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			if perPage == 0 {
				perPage = c.Config.Pagination.PerPage
			}
			m, err := newBrowseModel(recs, match, perPage)
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	src.register(cmd)
	cmd.Flags().IntVar(&perPage, "per-page", 0, fmt.Sprintf("records per page (default: from config, else %d)", pipeline.DefaultPerPage))
	cmd.Flags().StringVarP(&match, "match", "m", "", "only records whose id or title contains this text")

	return cmd
}

// =============================================================================
// browseModel - Interactive page-by-page view
// =============================================================================

// browseModel is the bubbletea model for the pager. Every page is sorted
// from fresh copies of the loaded records.
type browseModel struct {
	records []*hierarchy.Record
	match   string
	perPage int
	page    int
	pages   int
	total   int
	view    hierarchy.Page
	err     error
}

func newBrowseModel(recs []*hierarchy.Record, match string, perPage int) (browseModel, error) {
	if perPage <= 0 {
		perPage = pipeline.DefaultPerPage
	}
	m := browseModel{records: recs, match: match, perPage: perPage, page: 1}

	all, err := pipeline.SortRecords(m.clone(), pipeline.Options{Match: match})
	if err != nil {
		return m, err
	}
	m.total = len(all.Nodes)
	m.pages = max(hierarchy.Window{Page: 1, PerPage: perPage}.Pages(m.total), 1)
	m.load()
	return m, nil
}

func (m browseModel) clone() []*hierarchy.Record {
	out := make([]*hierarchy.Record, len(m.records))
	for i, r := range m.records {
		out[i] = r.Clone()
	}
	return out
}

// load sorts the current page.
func (m *browseModel) load() {
	m.view, m.err = pipeline.SortRecords(m.clone(), pipeline.Options{
		Page:    m.page,
		PerPage: m.perPage,
		Match:   m.match,
	})
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	page := m.page
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "n", "right", "l", " ", "pgdown":
		page++
	case "p", "left", "h", "pgup":
		page--
	case "g", "home":
		page = 1
	case "G", "end":
		page = m.pages
	}

	page = min(max(page, 1), m.pages)
	if page != m.page {
		m.page = page
		m.load()
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString(StyleDim.Render(" · page "))
	b.WriteString(StyleNumber.Render(fmt.Sprint(m.page)))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" of %d · %d records", m.pages, m.total)))
	if m.match != "" {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" matching %q", m.match)))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(browseErrorStyle.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	} else if m.view.Empty() {
		b.WriteString(StyleDim.Render("  (no records)"))
		b.WriteString("\n")
	} else {
		b.Write(text.Render(m.view, text.Options{Color: true}))
	}

	b.WriteString("\n")
	b.WriteString(browseHelpStyle.Render("←/p previous  →/n next  g/G first/last  q quit"))
	return b.String()
}

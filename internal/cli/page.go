package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/hierarchy"
	"github.com/matzehuels/treepage/pkg/pipeline"
	"github.com/matzehuels/treepage/pkg/render"
	"github.com/matzehuels/treepage/pkg/source"
)

// pageOpts holds the command-line flags for the page and choices commands.
type pageOpts struct {
	src      sourceFlags
	page     string // page number, validated as text so bad input reads well
	perPage  string // page size
	match    string // search filter over id and title
	format   string // output format
	output   string // output file, stdout when empty
	color    bool   // lipgloss styling for text output
	footer   bool   // pagination summary under text output
	detailed bool   // metadata in diagram labels
	persist  bool   // write self-parent repairs back to the store
	noCache  bool   // disable the page cache
	refresh  bool   // skip cache lookup
}

// pageCommand creates the page command.
func (c *CLI) pageCommand() *cobra.Command {
	var opts pageOpts

	cmd := &cobra.Command{
		Use:   "page [dsn]",
		Short: "Print one page of a record store as an indented tree",
		Long: `Print one page of a record store as an indented tree.

Records are emitted depth-first with children in stored order. A page that
opens inside a subtree first repeats the subtree's ancestors for context;
they do not count towards --per-page. Omitting --page or --per-page prints
the whole store.

The dsn is a record file (.json, .yaml), a SQLite or Bolt database, or a
redis:// or mongodb:// URI. Without one, the configured store is used.`,
		Example: `  treepage page menu.yaml --page 2 --per-page 20
  treepage page pages.db --match about --format json
  treepage page redis://localhost:6379/0 -n menus --format svg -o menu.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPage(cmd, args, opts)
		},
	}

	opts.register(cmd, true)
	return cmd
}

// choicesCommand creates the choices command.
func (c *CLI) choicesCommand() *cobra.Command {
	var opts pageOpts

	cmd := &cobra.Command{
		Use:   "choices [dsn]",
		Short: "Print one page of a record store as select-input choices",
		Long: `Print one page of a record store as select-input choices.

Each choice carries the record id as value, its title as label and its
level. Choices for records with a known parent are grouped under the
parent's choice, and placeholders for missing parents are flagged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = string(render.FormatChoices)
			return c.runPage(cmd, args, opts)
		},
	}

	opts.register(cmd, false)
	return cmd
}

func (o *pageOpts) register(cmd *cobra.Command, rendering bool) {
	o.src.register(cmd)
	cmd.Flags().StringVarP(&o.page, "page", "p", "", "page number, 1-based (default: from config, 0 for all)")
	cmd.Flags().StringVar(&o.perPage, "per-page", "", "records per page (default: from config, 0 for all)")
	cmd.Flags().StringVarP(&o.match, "match", "m", "", "only records whose id or title contains this text")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&o.persist, "persist", false, "write repaired self-parents back to the store")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached pages")
	if rendering {
		cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: text (default), json, choices, dot, svg, png, pdf")
		cmd.Flags().BoolVar(&o.color, "color", false, "style text output")
		cmd.Flags().BoolVar(&o.footer, "footer", false, "append a pagination summary to text output")
		cmd.Flags().BoolVar(&o.detailed, "detailed", false, "show levels and metadata in diagrams")
	}
}

// window resolves the page window from flags, falling back to the config.
func (c *CLI) window(o pageOpts) (hierarchy.Window, error) {
	page, perPage := o.page, o.perPage
	if page == "" {
		page = fmt.Sprint(c.Config.Pagination.Page)
	}
	if perPage == "" {
		perPage = fmt.Sprint(c.Config.Pagination.PerPage)
	}
	return hierarchy.ParseWindow(page, perPage)
}

func (c *CLI) runPage(cmd *cobra.Command, args []string, o pageOpts) error {
	ctx := cmd.Context()
	w, err := c.window(o)
	if err != nil {
		return err
	}
	if o.output == "" {
		if err := checkTerminal(cmd, o.format); err != nil {
			return err
		}
	}

	var dsn string
	if len(args) > 0 {
		dsn = args[0]
	}
	cfg := c.sourceConfig(dsn, o.src)
	src, err := c.openSource(ctx, dsn, o.src)
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := c.executePage(ctx, src, pipeline.Options{
		Page:     w.Page,
		PerPage:  w.PerPage,
		Match:    o.match,
		Format:   o.format,
		Color:    o.color,
		Footer:   o.footer,
		Detailed: o.detailed,
		Persist:  o.persist,
		Refresh:  o.refresh,
		Logger:   c.Logger,
	}, cfg.Namespace, o.noCache, o.output != "")
	if err != nil {
		return err
	}

	if o.output == "" {
		_, err := cmd.OutOrStdout().Write(res.Artifact)
		return err
	}
	if err := os.WriteFile(o.output, res.Artifact, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", o.output, err)
	}

	printSuccess("Page written")
	printFile(o.output)
	printStats(res)
	if res.Stats.Repaired > 0 && !o.persist {
		printWarning("%d records named themselves as parent; rerun with --persist to fix the store", res.Stats.Repaired)
	}
	return nil
}

// executePage runs the pipeline, with a spinner when the terminal is free.
func (c *CLI) executePage(ctx context.Context, src source.Source, opts pipeline.Options, namespace string, noCache, spin bool) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, namespace, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if !spin {
		return runner.Execute(ctx, src, opts)
	}

	spinner := newSpinnerWithContext(ctx, "Sorting records...")
	spinner.Start()
	res, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Sorting failed")
		return nil, err
	}
	spinner.Stop()
	return res, nil
}

// checkTerminal refuses to write binary formats to an interactive stdout.
func checkTerminal(cmd *cobra.Command, format string) error {
	f, err := render.ParseFormat(format)
	if err != nil || !f.Binary() {
		return err
	}
	if out, ok := cmd.OutOrStdout().(*os.File); ok && isatty.IsTerminal(out.Fd()) {
		return errs.New(errs.ErrCodeInvalidFormat, "%s output is binary; use --output or redirect stdout", f)
	}
	return nil
}

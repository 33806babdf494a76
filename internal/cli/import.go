package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/treepage/pkg/io"
)

// importCommand creates the import command for loading a record file into a store.
func (c *CLI) importCommand() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "import <file> [dsn]",
		Short: "Copy a JSON or YAML record file into a record store",
		Long: `Copy a JSON or YAML record file into a record store.

Records already in the store are updated in place and keep their position;
new records are appended in file order.`,
		Example: `  treepage import menu.yaml pages.db
  treepage import menu.json mongodb://localhost:27017 -n site.menu`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(c.Logger)

			recs, err := pkgio.Import(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			var dsn string
			if len(args) > 1 {
				dsn = args[1]
			}
			cfg := c.sourceConfig(dsn, src)
			dst, err := c.openSource(ctx, dsn, src)
			if err != nil {
				return err
			}
			defer dst.Close()

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Writing %d records...", len(recs)))
			spinner.Start()
			if err := dst.Save(ctx, recs...); err != nil {
				spinner.StopWithError("Import failed")
				return fmt.Errorf("save: %w", err)
			}
			spinner.Stop()
			prog.done("imported records", "count", len(recs), "driver", cfg.Driver)

			printSuccess("Imported %d records", len(recs))
			printDetail("%s store: %s", cfg.Driver, cfg.DSN)
			printNewline()
			printNextStep("View", fmt.Sprintf("%s page %s --driver %s --per-page 20", appName, cfg.DSN, cfg.Driver))
			return nil
		},
	}

	src.register(cmd)
	return cmd
}

// exportCommand creates the export command for dumping a store to a record file.
func (c *CLI) exportCommand() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "export <file> [dsn]",
		Short: "Write every record of a store to a JSON or YAML file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var dsn string
			if len(args) > 1 {
				dsn = args[1]
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
			if err := pkgio.Export(recs, args[0]); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}

			printSuccess("Exported %d records", len(recs))
			printFile(args[0])
			return nil
		},
	}

	src.register(cmd)
	return cmd
}

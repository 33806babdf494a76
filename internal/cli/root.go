// Package cli implements the treepage command-line interface.
//
// treepage reads flat records that name their parent from a file or a
// database and prints them one page at a time in depth-first order, with
// every record indented under its parent.
//
// # Commands
//
// The main commands are:
//   - page: Sort and render one page of a record store
//   - choices: Emit the page as select-input choices
//   - browse: Page through a store interactively
//   - import / export: Copy records between files and stores
//   - cache: Manage the rendered-page cache
//   - config: Show or create the configuration file
//
// # Configuration
//
// Settings are read from ~/.config/treepage/config.toml and then from the
// file named by --config. Command-line flags override both.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every store access, cache lookup and repair.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treepage/pkg/buildinfo"
	"github.com/matzehuels/treepage/pkg/config"
	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	buildinfo.Resolve()

	root := &cobra.Command{
		Use:   appName,
		Short: "treepage pages through parent/child records as a tree",
		Long: `treepage reads flat records that reference their parent by id and emits
them in depth-first order with indentation levels, one page at a time.

Pages that open inside a subtree repeat the subtree's ancestors for context,
records whose parent is missing are anchored under a placeholder, and
records that name themselves as parent are repaired.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.pageCommand())
	root.AddCommand(c.choicesCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// preRun loads the configuration and sets up logging before any command.
func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	if c.configPath != "" && !fileExists(c.configPath) {
		return errs.New(errs.ErrCodeFileNotFound, "config file %s not found", c.configPath)
	}
	cfg, err := config.LoadMerged(config.DefaultPath(), c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	level := parseLevel(cfg.Log.Level)
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	if c.verbose {
		hooks := newLogHooks(c.Logger)
		observability.SetPagerHooks(hooks)
		observability.SetSourceHooks(hooks)
		observability.SetCacheHooks(hooks)
	}

	c.Logger.Debug("configuration loaded",
		"driver", cfg.Source.Driver,
		"cache", cfg.Cache.Backend,
		"config", strings.TrimSpace(c.configPath))
	return nil
}

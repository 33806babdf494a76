package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treepage/pkg/config"
	errs "github.com/matzehuels/treepage/pkg/errors"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configShowCommand prints the effective settings.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			printKeyValue("source.driver", cfg.Source.Driver)
			printKeyValue("source.dsn", orDash(cfg.Source.DSN))
			printKeyValue("source.namespace", orDash(cfg.Source.Namespace))
			printKeyValue("page", fmt.Sprint(cfg.Pagination.Page))
			printKeyValue("per_page", fmt.Sprint(cfg.Pagination.PerPage))
			printKeyValue("cache.backend", cfg.Cache.Backend)
			printKeyValue("cache.ttl", cfg.Cache.TTL.String())
			printKeyValue("log.level", cfg.Log.Level)
			return nil
		},
	}
}

// configInitCommand writes the defaults to a new config file.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) > 0 {
				path = args[0]
			}
			if fileExists(path) && !force {
				return errs.New(errs.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}
			if err := config.Write(config.Default(), path); err != nil {
				return err
			}
			printSuccess("Config written")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

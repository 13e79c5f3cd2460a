package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/config"
)

func newInitCommand(opts *options) *cobra.Command {
	var dsn string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
			}

			cfg := config.Default()
			cfg.Database.DSN = dsn
			if err := config.Save(opts.configPath, cfg); err != nil {
				return err
			}
			if cfg.Import.Dir != "" {
				if err := os.MkdirAll(cfg.Import.Dir, 0o755); err != nil {
					return fmt.Errorf("creating import dir: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres connection string")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

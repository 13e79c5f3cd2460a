package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/buildinfo"
	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/store"
)

// options are shared by all subcommands.
type options struct {
	configPath string
	open       func(dsn string) (*store.Store, error)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{open: store.Open})
}

func newRootCommand(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "statements",
		Short:   "Import bank statements into a transactions database",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to config file")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newServeCommand(opts),
		newImportCommand(opts),
		newPreviewCommand(opts),
		newListCommand(opts),
		newMigrateCommand(opts),
	)

	return rootCmd
}

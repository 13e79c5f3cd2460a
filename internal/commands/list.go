package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/store"
)

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the 50 most recently imported transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			st, err := opts.openStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeStore(st, log)

			recs, err := st.Recent(cmd.Context(), store.RecentLimit)
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), recs)
		},
	}
}

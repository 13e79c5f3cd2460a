package commands

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/ingest"
	"github.com/cleared-dev/statements/internal/model"
)

func newPreviewCommand(opts *options) *cobra.Command {
	var ov model.Overrides
	var format string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show how a statement would be imported without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			path := args[0]
			if format == "" {
				format = filepath.Ext(path)
			}

			recs, err := newService(cfg, nil).Preview(path, format, ov)
			if err != nil {
				return errors.New(ingest.Message(err))
			}
			return printRecords(cmd.OutOrStdout(), recs)
		},
	}

	cmd.Flags().StringVar(&ov.BankName, "bank-name", "", "bank name for rows without one")
	cmd.Flags().StringVar(&ov.AccountNumber, "account-number", "", "account number for rows without one")
	cmd.Flags().StringVar(&format, "format", "", "file format (csv, xlsx, xls); defaults to the extension")

	return cmd
}

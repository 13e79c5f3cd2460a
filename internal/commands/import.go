package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/importer"
	"github.com/cleared-dev/statements/internal/ingest"
	"github.com/cleared-dev/statements/internal/logger"
	"github.com/cleared-dev/statements/internal/model"
)

func newImportCommand(opts *options) *cobra.Command {
	var ov model.Overrides
	var fromDir bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import statement files into the database",
		Long: "Import CSV, XLSX or XLS statements. With --dir, every statement in the\n" +
			"configured import directory is imported and moved to its processed/\n" +
			"subdirectory on success.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromDir == (len(args) > 0) {
				return errors.New("pass either statement files or --dir")
			}

			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			ctx := logger.WithContext(cmd.Context(), log)

			st, err := opts.openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeStore(st, log)
			svc := newService(cfg, st)

			paths := args
			if fromDir {
				files, err := importer.Scan(cfg.Import.Dir)
				if err != nil {
					return err
				}
				paths = paths[:0]
				for _, f := range files {
					paths = append(paths, f.Path)
				}
				if len(paths) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No statements in %s\n", cfg.Import.Dir)
					return nil
				}
			}

			out := cmd.OutOrStdout()
			failed := false
			for _, path := range paths {
				name := filepath.Base(path)
				res, err := svc.Import(ctx, path, filepath.Ext(path), ov)
				if err != nil {
					failed = true
					fmt.Fprintf(out, "%s: %s\n", name, ingest.Message(err))
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", name, res.Summary())
				if fromDir {
					if err := importer.MarkProcessed(cfg.Import.Dir, name); err != nil {
						log.Warn().Err(err).Str("file", name).Msg("could not move imported file")
					}
				}
			}
			if failed {
				return errImportFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ov.BankName, "bank-name", "", "bank name for rows without one")
	cmd.Flags().StringVar(&ov.AccountNumber, "account-number", "", "account number for rows without one")
	cmd.Flags().BoolVar(&fromDir, "dir", false, "import every statement in the import directory")

	return cmd
}

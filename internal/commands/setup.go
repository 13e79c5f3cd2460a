package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/importer"
	"github.com/cleared-dev/statements/internal/importlog"
	"github.com/cleared-dev/statements/internal/ingest"
	"github.com/cleared-dev/statements/internal/logger"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/store"
)

func (o *options) load() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Console), nil
}

// openStore connects to the database and, when enabled, creates the
// transactions table. A schema failure is logged and does not stop start-up.
func (o *options) openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st, err := o.open(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := st.EnsureSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("schema initialization failed, continuing")
		}
	}
	return st, nil
}

func newRegistry(cfg *config.Config) *importer.Registry {
	if cfg.Import.Spreadsheets {
		return importer.DefaultRegistry()
	}
	return importer.DelimitedRegistry()
}

func newService(cfg *config.Config, sink ingest.Sink) *ingest.Service {
	if cfg.Import.History == "" {
		return ingest.NewService(newRegistry(cfg), sink, nil)
	}
	return ingest.NewService(newRegistry(cfg), sink, importlog.New(cfg.Import.History))
}

func closeStore(st *store.Store, log zerolog.Logger) {
	if err := st.Close(); err != nil {
		log.Warn().Err(err).Msg("closing database")
	}
}

// errImportFailed is returned after import errors were reported to the user.
var errImportFailed = errors.New("one or more imports failed")

func printRecords(w io.Writer, recs []model.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tVALUE DATE\tNARRATION\tDEBIT\tCREDIT\tBALANCE\tBANK\tACCOUNT")
	for _, r := range recs {
		balance := "-"
		if r.Balance.Valid {
			balance = r.Balance.Decimal.StringFixed(2)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			orDash(r.TransactionDateString()),
			orDash(r.ValueDateString()),
			orDash(deref(r.Narration)),
			r.DebitAmount.StringFixed(2),
			r.CreditAmount.StringFixed(2),
			balance,
			orDash(deref(r.BankName)),
			orDash(deref(r.AccountNumber)),
		)
	}
	return tw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

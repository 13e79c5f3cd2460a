// Package ingest runs one statement file through the read, normalize, coerce
// and insert stages.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/statements/internal/coerce"
	"github.com/cleared-dev/statements/internal/importer"
	"github.com/cleared-dev/statements/internal/importlog"
	"github.com/cleared-dev/statements/internal/logger"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/normalize"
)

// RowReader produces raw rows for a file and its declared extension.
type RowReader interface {
	Read(path, ext string) ([]model.RawRow, error)
}

// Sink stores one record and returns its generated id.
type Sink interface {
	Insert(ctx context.Context, rec *model.Record) (uint, error)
}

// History records the outcome of each import.
type History interface {
	Append(e importlog.Entry) error
}

// Result reports how many rows of a file were stored.
type Result struct {
	Imported int
	Total    int
}

// PartialImportError reports a storage failure that stopped an import after
// Imported of Total rows were committed.
type PartialImportError struct {
	Imported int
	Total    int
	Err      error
}

func (e *PartialImportError) Error() string {
	return fmt.Sprintf("imported %d of %d transactions before error: %v", e.Imported, e.Total, e.Err)
}

func (e *PartialImportError) Unwrap() error { return e.Err }

// Service imports statement files.
type Service struct {
	reader  RowReader
	sink    Sink
	history History
	now     func() time.Time
}

// NewService creates an import Service. history may be nil.
func NewService(reader RowReader, sink Sink, history History) *Service {
	return &Service{reader: reader, sink: sink, history: history, now: time.Now}
}

// Preview reads, normalizes and coerces the file at path without storing it.
func (s *Service) Preview(path, ext string, ov model.Overrides) ([]model.Record, error) {
	rows, err := s.reader.Read(path, ext)
	if err != nil {
		return nil, err
	}
	recs := make([]model.Record, 0, len(rows))
	for _, raw := range rows {
		rec, _ := coerce.Record(raw, normalize.Row(raw), ov)
		recs = append(recs, rec)
	}
	return recs, nil
}

// Import stores every row of the file at path. Rows are inserted one at a
// time; the first insert failure stops the import, leaving earlier rows
// stored, and is returned as a *PartialImportError.
func (s *Service) Import(ctx context.Context, path, ext string, ov model.Overrides) (Result, error) {
	log := logger.FromContext(ctx).With().
		Str("file", filepath.Base(path)).
		Str("format", importer.NormalizeExt(ext)).
		Logger()

	res, err := s.run(ctx, log, path, ext, ov)
	if err != nil {
		log.Error().Err(err).Int("imported", res.Imported).Int("total", res.Total).Msg("import failed")
	} else {
		log.Info().Int("imported", res.Imported).Msg("import complete")
	}
	s.record(log, path, ext, res, err)
	return res, err
}

func (s *Service) run(ctx context.Context, log zerolog.Logger, path, ext string, ov model.Overrides) (Result, error) {
	rows, err := s.reader.Read(path, ext)
	if err != nil {
		return Result{}, err
	}

	res := Result{Total: len(rows)}
	for i, raw := range rows {
		rec, fb := coerce.Record(raw, normalize.Row(raw), ov)
		if len(fb) > 0 {
			log.Debug().Int("row", i+1).Strs("fields", fb).Msg("stored defaults for unparseable cells")
		}
		if _, err := s.sink.Insert(ctx, &rec); err != nil {
			return res, &PartialImportError{Imported: res.Imported, Total: res.Total, Err: err}
		}
		res.Imported++
	}
	return res, nil
}

func (s *Service) record(log zerolog.Logger, path, ext string, res Result, err error) {
	if s.history == nil {
		return
	}
	e := importlog.Entry{
		Timestamp: s.now().UTC(),
		File:      filepath.Base(path),
		Format:    importer.NormalizeExt(ext),
		Imported:  res.Imported,
		Total:     res.Total,
	}
	if err != nil {
		e.Error = err.Error()
	}
	if herr := s.history.Append(e); herr != nil {
		log.Warn().Err(herr).Msg("failed to write import history")
	}
}

package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/cleared-dev/statements/internal/model"
)

// CSVReader reads delimited-text statement exports. The first record is the
// header; each later record is paired with it by position. Header cells that
// the record does not reach are recorded as missing. Blank lines are skipped.
type CSVReader struct{}

const utf8BOM = "\ufeff"

// Format returns the reader name.
func (p *CSVReader) Format() string { return "csv" }

// Extensions returns the extensions this reader handles.
func (p *CSVReader) Extensions() []string { return []string{"csv"} }

// Read parses a CSV statement.
func (p *CSVReader) Read(r io.ReadSeeker) ([]model.RawRow, error) {
	src, err := decodeText(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
	}

	var rows []model.RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		rows = append(rows, pairCSV(header, rec))
	}
	return rows, nil
}

func pairCSV(header, rec []string) model.RawRow {
	row := model.NewRawRow()
	for i, h := range header {
		if i < len(rec) {
			row.Set(h, rec[i])
		} else {
			row.SetMissing(h)
		}
	}
	return row
}

// decodeText returns r as UTF-8. Input that is not valid UTF-8 is taken to be
// Windows-1252, the usual encoding of older bank exports.
func decodeText(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if utf8.Valid(data) {
		return bytes.NewReader(data), nil
	}
	return transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()), nil
}

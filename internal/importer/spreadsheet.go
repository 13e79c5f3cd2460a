package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/statements/internal/model"
)

// XLSXReader reads the first worksheet of an Office Open XML workbook.
type XLSXReader struct{}

// Format returns the reader name.
func (p *XLSXReader) Format() string { return "xlsx" }

// Extensions returns the extensions this reader handles.
func (p *XLSXReader) Extensions() []string { return []string{"xlsx"} }

// Read parses an XLSX statement.
func (p *XLSXReader) Read(r io.ReadSeeker) ([]model.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in workbook")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return spreadsheetRows(cells), nil
}

// XLSReader reads the first worksheet of a legacy BIFF workbook.
type XLSReader struct{}

// Format returns the reader name.
func (p *XLSReader) Format() string { return "xls" }

// Extensions returns the extensions this reader handles.
func (p *XLSReader) Extensions() []string { return []string{"xls"} }

// Read parses an XLS statement.
func (p *XLSReader) Read(r io.ReadSeeker) ([]model.RawRow, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("no sheets found in workbook")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("could not get first sheet")
	}

	var cells [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			cells = append(cells, nil)
			continue
		}
		line := make([]string, row.LastCol())
		for c := range line {
			line[c] = row.Col(c)
		}
		cells = append(cells, line)
	}
	return spreadsheetRows(cells), nil
}

// xlsRow returns row i of sheet, or nil when the sheet has no record for
// it. WorkSheet.Row panics on undefined rows, which BIFF writers omit for
// blank lines.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// spreadsheetRows pairs each row after the first with the header row. Rows
// whose cells are all blank are dropped; short rows are padded with "".
func spreadsheetRows(cells [][]string) []model.RawRow {
	if len(cells) == 0 {
		return nil
	}
	header := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		header[i] = strings.TrimSpace(h)
	}

	var rows []model.RawRow
	for _, line := range cells[1:] {
		if blankRow(line) {
			continue
		}
		row := model.NewRawRow()
		for i, h := range header {
			var v string
			if i < len(line) {
				v = strings.TrimSpace(line[i])
			}
			row.Set(h, v)
		}
		rows = append(rows, row)
	}
	return rows
}

func blankRow(line []string) bool {
	for _, c := range line {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package ingest

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/statements/internal/importer"
)

// Summary describes a successful import for the operator.
func (r Result) Summary() string {
	if r.Imported == 1 {
		return "Imported 1 transaction."
	}
	return fmt.Sprintf("Imported %d transactions.", r.Imported)
}

// Message renders an import error as a single line for the operator.
func Message(err error) string {
	var partial *PartialImportError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &partial):
		return fmt.Sprintf("Imported %d of %d transactions before error: %v", partial.Imported, partial.Total, partial.Err)
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return "Unsupported file type. Please upload a CSV, XLSX or XLS file."
	case errors.Is(err, importer.ErrMissingCapability):
		return "Spreadsheet support is not available. Please save the statement as CSV and upload it again."
	case errors.Is(err, importer.ErrNoData):
		return "No transactions found in the uploaded file."
	case errors.Is(err, importer.ErrParseFailure):
		return fmt.Sprintf("Could not read the uploaded file: %v", err)
	default:
		return fmt.Sprintf("Import failed: %v", err)
	}
}

// IsUserError reports whether err was caused by the uploaded file rather
// than by the server.
func IsUserError(err error) bool {
	return errors.Is(err, importer.ErrUnsupportedFormat) ||
		errors.Is(err, importer.ErrMissingCapability) ||
		errors.Is(err, importer.ErrNoData) ||
		errors.Is(err, importer.ErrParseFailure)
}

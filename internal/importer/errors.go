package importer

import "errors"

var (
	// ErrUnsupportedFormat means the declared extension is not csv, xlsx or xls.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrMissingCapability means the format is known but no reader for it is
	// available in this deployment.
	ErrMissingCapability = errors.New("spreadsheet support is not available")
	// ErrParseFailure means the file could not be opened or decoded.
	ErrParseFailure = errors.New("could not parse file")
	// ErrNoData means the file was read but held no data rows.
	ErrNoData = errors.New("no data rows found")
)

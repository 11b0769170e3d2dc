package ingest

import "errors"

var (
	// ErrMalformedCSV indicates the spreadsheet export could not be parsed.
	ErrMalformedCSV = errors.New("malformed csv")
	// ErrNoHeader indicates an export without even a header row.
	ErrNoHeader = errors.New("csv has no header row")
)

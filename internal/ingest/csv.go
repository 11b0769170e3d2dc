package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ganot/grantmap/internal/domain/grant"
)

// Column positions of the spreadsheet export.
const (
	colName = iota
	colAmount
	colDescription
	colWebsite
	colYears
	colFocusArea
	colServiceArea
	colCancelled
	colCancelReason
)

const minFields = 6

// cancelledMarker is how the spreadsheet renders a ticked checkbox.
const cancelledMarker = "checked"

// Row is one grant line of the spreadsheet export.
type Row struct {
	Line         int
	Name         string
	Amount       string
	Description  string
	Website      string
	Years        string
	FocusArea    string
	ServiceArea  string
	Cancelled    bool
	CancelReason string
}

// ParseCSV reads the spreadsheet export. The first record is the header.
// Quoted fields may hold commas, newlines and doubled quotes. Blank rows are
// ignored; rows too short to describe a grant are skipped and reported. Any
// syntax error aborts the parse.
func ParseCSV(r io.Reader) ([]Row, []grant.Anomaly, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrNoHeader
		}
		return nil, nil, malformed(err)
	}

	var rows []Row
	var skipped []grant.Anomaly
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, malformed(err)
		}
		line, _ := cr.FieldPos(0)

		fields := make([]string, len(record))
		blank := true
		for i, f := range record {
			fields[i] = strings.TrimSpace(f)
			if fields[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		if len(fields) < minFields || fields[colName] == "" || fields[colAmount] == "" {
			skipped = append(skipped, grant.Anomaly{
				Name:   fields[colName],
				Kind:   grant.AnomalySkippedRow,
				Detail: fmt.Sprintf("line %d: %d fields, name %q, amount %q", line, len(fields), fields[colName], field(fields, colAmount)),
			})
			continue
		}

		rows = append(rows, Row{
			Line:         line,
			Name:         fields[colName],
			Amount:       fields[colAmount],
			Description:  fields[colDescription],
			Website:      fields[colWebsite],
			Years:        fields[colYears],
			FocusArea:    fields[colFocusArea],
			ServiceArea:  field(fields, colServiceArea),
			Cancelled:    field(fields, colCancelled) == cancelledMarker,
			CancelReason: field(fields, colCancelReason),
		})
	}
	return rows, skipped, nil
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func malformed(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, perr.StartLine, perr.Err)
	}
	return fmt.Errorf("%w: %v", ErrMalformedCSV, err)
}

package grant

import (
	"errors"
	"fmt"
	"strings"
)

// Validate returns every data-quality defect of a single entry joined into one
// error, or nil when the entry is usable.
func Validate(g Grantee) error {
	var errs []error
	if strings.TrimSpace(g.Name) == "" {
		errs = append(errs, ErrMissingName)
	}
	if lat, lng, ok := g.Location(); !ok {
		errs = append(errs, ErrMissingLocation)
	} else if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		errs = append(errs, fmt.Errorf("%w: (%g, %g)", ErrInvalidLocation, lat, lng))
	}
	if !g.Amount.Valid() {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidAmount, g.Amount))
	}
	if !g.Status.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidStatus, g.Status))
	}
	for _, gr := range g.Grants {
		if !gr.Amount.Valid() {
			errs = append(errs, fmt.Errorf("%w: grant #%d: %s", ErrInvalidAmount, gr.ID, gr.Amount))
		}
	}
	return errors.Join(errs...)
}

// CheckDataset validates every entry and the dataset as a whole. Entries
// sharing a name (ignoring case) and metadata totals that disagree with the
// entries are reported alongside the per-entry defects.
func CheckDataset(ds Dataset) []Anomaly {
	var out []Anomaly
	seen := make(map[string]bool, len(ds.Grantees))
	for _, g := range ds.Grantees {
		out = append(out, Anomalies(g.Name, Validate(g))...)

		key := strings.ToLower(strings.TrimSpace(g.Name))
		if key == "" {
			continue
		}
		if seen[key] {
			out = append(out, Anomalies(g.Name, ErrDuplicateName)...)
		}
		seen[key] = true
	}

	if ds.Metadata.TotalGrantees != len(ds.Grantees) {
		out = append(out, Anomalies("", fmt.Errorf("%w: totalGrantees is %d, dataset has %d",
			ErrMetadataMismatch, ds.Metadata.TotalGrantees, len(ds.Grantees)))...)
	}
	if total := TotalFunding(ds.Grantees); !total.Equal(ds.Metadata.TotalFunding) {
		out = append(out, Anomalies("", fmt.Errorf("%w: totalFunding is %s, entries sum to %s",
			ErrMetadataMismatch, ds.Metadata.TotalFunding, total))...)
	}
	return out
}

package location

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
)

// Service applies a correction table to a dataset.
type Service struct {
	table   Table
	journal RunJournal
	logger  *slog.Logger
}

// NewService creates a correction service. journal and logger may be nil.
func NewService(table Table, journal RunJournal, logger *slog.Logger) *Service {
	return &Service{table: table, journal: journal, logger: logger}
}

// Request describes a correction run.
type Request struct {
	Dataset grant.Dataset
	DryRun  bool

	// Save, when set, writes the result before the run is journaled. It is
	// not called for dry runs, and a failure aborts the run unjournaled.
	Save func(grant.Dataset) error
}

// Result is the corrected dataset and what changed.
type Result struct {
	RunID     string
	Dataset   grant.Dataset
	Changes   []Change
	Unmatched []string
}

// Correct applies the service's table to the dataset.
func (s *Service) Correct(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds, changes, unmatched := Apply(req.Dataset, s.table)
	result := &Result{
		RunID:     activity.NewRunID(),
		Dataset:   ds,
		Changes:   changes,
		Unmatched: unmatched,
	}

	var anomalies []grant.Anomaly
	for _, g := range ds.Grantees {
		anomalies = append(anomalies, grant.Anomalies(g.Name, grant.Validate(g))...)
	}

	if s.logger != nil {
		for _, c := range changes {
			s.logger.Info("location corrected",
				"name", c.Name,
				"reason", c.Reason,
				"old", describePlace(c.Before),
				"new", describePlace(c.After),
			)
		}
		if len(unmatched) > 0 {
			s.logger.Debug("corrections without a matching entry", "names", unmatched)
		}
		s.logger.Info("location correction complete", "run_id", result.RunID, "corrected", len(changes), "table", len(s.table))
	}

	if !req.DryRun && req.Save != nil {
		if err := req.Save(result.Dataset); err != nil {
			return nil, err
		}
	}

	if s.journal != nil {
		if err := s.journal.RecordRun(ctx, activity.Run{
			ID:        result.RunID,
			Type:      activity.TypeCorrectionRun,
			Summary:   fmt.Sprintf("applied %d of %d location corrections", len(changes), len(s.table)),
			Details:   changes,
			DryRun:    req.DryRun,
			Anomalies: anomalies,
		}); err != nil && s.logger != nil {
			s.logger.Warn("failed to journal run", "run_id", result.RunID, "error", err)
		}
	}
	return result, nil
}

func describePlace(p Place) string {
	if p.Lat == nil || p.Lng == nil {
		return fmt.Sprintf("%s, %s (no coordinates)", p.City, p.County)
	}
	return fmt.Sprintf("%s, %s (%g, %g)", p.City, p.County, *p.Lat, *p.Lng)
}

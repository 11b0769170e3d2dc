package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
)

// Service turns a spreadsheet export into a fresh dataset.
type Service struct {
	converter Converter
	journal   RunJournal
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates an ingest service. journal and logger may be nil.
func NewService(converter Converter, journal RunJournal, logger *slog.Logger) *Service {
	return &Service{converter: converter, journal: journal, logger: logger, now: time.Now}
}

// Request describes an ingest run.
type Request struct {
	Source     io.Reader
	SourceName string
	DryRun     bool

	// Save, when set, writes the result before the run is journaled. It is
	// not called for dry runs, and a failure aborts the run unjournaled.
	Save func(grant.Dataset) error
}

// Report summarizes an ingest run.
type Report struct {
	Source    string          `json:"source"`
	Rows      int             `json:"rows"`
	Entries   int             `json:"entries"`
	Cancelled int             `json:"cancelled_dropped"`
	Anomalies []grant.Anomaly `json:"-"`
}

// Result is the new dataset plus its report.
type Result struct {
	RunID   string
	Dataset grant.Dataset
	Report  Report
}

// Ingest parses the export and converts it. A parse failure returns an error
// and no dataset.
func (s *Service) Ingest(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, skipped, err := ParseCSV(req.Source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", req.SourceName, err)
	}
	grantees, anomalies := s.converter.Convert(rows)

	report := Report{
		Source:    req.SourceName,
		Rows:      len(rows),
		Entries:   len(grantees),
		Anomalies: append(skipped, anomalies...),
	}
	if !s.converter.IncludeCancelled {
		for _, r := range rows {
			if r.Cancelled {
				report.Cancelled++
			}
		}
	}

	ds := grant.Dataset{Grantees: grantees, Metadata: grant.Metadata{DataSource: req.SourceName}}
	ds.Refresh(s.now(), "")

	result := &Result{RunID: activity.NewRunID(), Dataset: ds, Report: report}

	if s.logger != nil {
		for _, a := range report.Anomalies {
			s.logger.Warn("ingest anomaly", "name", a.Name, "kind", a.Kind, "detail", a.Detail)
		}
		s.logger.Info("ingest complete",
			"run_id", result.RunID,
			"source", req.SourceName,
			"grantees", len(grantees),
			"total_funding", ds.Metadata.TotalFunding.String(),
		)
	}

	if !req.DryRun && req.Save != nil {
		if err := req.Save(result.Dataset); err != nil {
			return nil, err
		}
	}

	if s.journal != nil {
		if err := s.journal.RecordRun(ctx, activity.Run{
			ID:        result.RunID,
			Type:      activity.TypeIngestRun,
			Summary:   fmt.Sprintf("ingested %d grantees from %s", len(grantees), req.SourceName),
			Details:   report,
			DryRun:    req.DryRun,
			Anomalies: report.Anomalies,
		}); err != nil && s.logger != nil {
			s.logger.Warn("failed to journal run", "run_id", result.RunID, "error", err)
		}
	}
	return result, nil
}

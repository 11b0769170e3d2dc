package consolidate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/domain/normalize"
)

// Service runs a consolidation pass over a whole dataset.
type Service struct {
	normalizer normalize.Normalizer
	policy     Policy
	merger     *Merger
	journal    RunJournal
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a consolidation service. journal and logger may be nil.
func NewService(n normalize.Normalizer, policy Policy, journal RunJournal, logger *slog.Logger) *Service {
	return &Service{
		normalizer: n,
		policy:     policy,
		merger:     NewMerger(policy),
		journal:    journal,
		logger:     logger,
		now:        time.Now,
	}
}

// Request describes a consolidation run.
type Request struct {
	Dataset grant.Dataset
	DryRun  bool

	// Save, when set, writes the result before the run is journaled. It is
	// not called for dry runs, and a failure aborts the run unjournaled.
	Save func(grant.Dataset) error
}

// MergedGroup reports one group that was folded into a single entry.
type MergedGroup struct {
	Name        string       `json:"name"`
	SourceNames []string     `json:"source_names"`
	GrantCount  int          `json:"grant_count"`
	Total       grant.Amount `json:"total"`
	Years       []string     `json:"years"`
}

// Report summarizes a consolidation run.
type Report struct {
	Rule        normalize.Rule  `json:"rule"`
	InputCount  int             `json:"input_count"`
	OutputCount int             `json:"output_count"`
	Merged      []MergedGroup   `json:"merged"`
	Anomalies   []grant.Anomaly `json:"-"`
}

// Result is the consolidated dataset plus its report.
type Result struct {
	RunID   string
	Dataset grant.Dataset
	Report  Report
}

// Consolidate groups the dataset's entries with the configured rule and merges
// each group. The input dataset is not modified.
func (s *Service) Consolidate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groups := GroupRecords(req.Dataset.Grantees, s.normalizer)
	report := Report{
		Rule:       s.normalizer.Rule(),
		InputCount: len(req.Dataset.Grantees),
	}

	out := make([]grant.Grantee, 0, len(groups))
	for _, g := range groups {
		merged, err := s.merger.Merge(g)
		if err != nil {
			// Keep every constituent verbatim rather than write a wrong total.
			report.Anomalies = append(report.Anomalies, grant.Anomaly{
				Name:   g.Canonical,
				Kind:   grant.AnomalyUnmergedGroup,
				Detail: err.Error(),
			})
			s.warn("group left unmerged", "name", g.Canonical, "records", len(g.Records), "error", err)
			for _, rec := range g.Records {
				out = append(out, rec.Clone())
			}
			continue
		}
		if len(g.Records) > 1 {
			report.Merged = append(report.Merged, describeMerge(g, merged))
			s.logMerge(g, merged)
		}
		out = append(out, merged)
	}

	for _, g := range out {
		report.Anomalies = append(report.Anomalies, grant.Anomalies(g.Name, grant.Validate(g))...)
	}

	ds := grant.Dataset{Grantees: out, Metadata: req.Dataset.Metadata}
	ds.Refresh(s.now(), s.policy.Note)
	report.OutputCount = len(out)

	result := &Result{
		RunID:   activity.NewRunID(),
		Dataset: ds,
		Report:  report,
	}

	if s.logger != nil {
		s.logger.Info("consolidation complete",
			"run_id", result.RunID,
			"rule", report.Rule,
			"input", report.InputCount,
			"output", report.OutputCount,
			"multi_grant", len(report.Merged),
			"anomalies", len(report.Anomalies),
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
			Type:      activity.TypeConsolidationRun,
			Summary:   fmt.Sprintf("consolidated %d entries into %d organizations (%s)", report.InputCount, report.OutputCount, report.Rule),
			Details:   report,
			DryRun:    req.DryRun,
			Anomalies: report.Anomalies,
		}); err != nil {
			s.warn("failed to journal run", "run_id", result.RunID, "error", err)
		}
	}

	return result, nil
}

func describeMerge(g Group, merged grant.Grantee) MergedGroup {
	names := make([]string, len(g.Records))
	for i, rec := range g.Records {
		names[i] = rec.Name
	}
	return MergedGroup{
		Name:        merged.Name,
		SourceNames: names,
		GrantCount:  merged.GrantCount,
		Total:       merged.Amount,
		Years:       merged.Years,
	}
}

func (s *Service) logMerge(g Group, merged grant.Grantee) {
	if s.logger == nil {
		return
	}
	s.logger.Info("consolidating entries", "name", merged.Name, "entries", len(g.Records))
	for i, rec := range g.Records {
		s.logger.Debug("constituent", "name", merged.Name, "index", i+1, "source", rec.Name, "years", rec.Years, "amount", rec.Amount.String())
	}
	s.logger.Info("merged", "name", merged.Name, "total", merged.Amount.String(), "years", merged.Years)
}

func (s *Service) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

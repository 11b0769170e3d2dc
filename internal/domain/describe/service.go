package describe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
)

// generated marks descriptions written by consolidation; they are left alone.
const generated = "This organization received "

// Service cleans every description in a dataset.
type Service struct {
	journal RunJournal
	logger  *slog.Logger
}

// NewService creates a description cleaning service. Both arguments may be nil.
func NewService(journal RunJournal, logger *slog.Logger) *Service {
	return &Service{journal: journal, logger: logger}
}

// Request describes a cleaning run.
type Request struct {
	Dataset grant.Dataset
	DryRun  bool

	// Save, when set, writes the result before the run is journaled. It is
	// not called for dry runs, and a failure aborts the run unjournaled.
	Save func(grant.Dataset) error
}

// Change records one rewritten description.
type Change struct {
	Name   string `json:"name"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Result is the cleaned dataset and the descriptions that changed.
type Result struct {
	RunID   string
	Dataset grant.Dataset
	Changes []Change
}

// Clean rewrites the top-level description of every entry. Constituent grant
// descriptions are kept as recorded.
func (s *Service) Clean(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]grant.Grantee, len(req.Dataset.Grantees))
	var changes []Change
	for i, g := range req.Dataset.Grantees {
		g = g.Clone()
		if after, ok := cleanText(g.Description); ok {
			changes = append(changes, Change{Name: g.Name, Before: g.Description, After: after})
			g.Description = after
		}
		out[i] = g
	}

	result := &Result{
		RunID:   activity.NewRunID(),
		Dataset: grant.Dataset{Grantees: out, Metadata: req.Dataset.Metadata},
		Changes: changes,
	}

	if s.logger != nil {
		s.logger.Info("descriptions cleaned", "run_id", result.RunID, "entries", len(out), "changed", len(changes))
	}
	if !req.DryRun && req.Save != nil {
		if err := req.Save(result.Dataset); err != nil {
			return nil, err
		}
	}

	if s.journal != nil {
		if err := s.journal.RecordRun(ctx, activity.Run{
			ID:      result.RunID,
			Type:    activity.TypeCleanRun,
			Summary: fmt.Sprintf("cleaned %d descriptions across %d entries", len(changes), len(out)),
			Details: changes,
			DryRun:  req.DryRun,
		}); err != nil && s.logger != nil {
			s.logger.Warn("failed to journal run", "run_id", result.RunID, "error", err)
		}
	}
	return result, nil
}

func cleanText(desc string) (string, bool) {
	if strings.HasPrefix(desc, generated) {
		return desc, false
	}
	after := Clean(desc)
	return after, after != desc
}

package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service handles run journal operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// NewRunID returns a fresh identifier for a batch run.
func NewRunID() string {
	return uuid.NewString()
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.RunID == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// RecordRun journals a finished run followed by one entry per anomaly.
func (s *Service) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" || run.Type == "" {
		return ErrInvalidInput
	}

	details := ""
	if run.Details != nil {
		data, err := json.Marshal(run.Details)
		if err != nil {
			return fmt.Errorf("encoding run details: %w", err)
		}
		details = string(data)
	}

	now := time.Now()
	if err := s.LogActivity(ctx, &ActivityEntry{
		RunID:        run.ID,
		ActivityType: run.Type,
		Summary:      run.Summary,
		Details:      details,
		DryRun:       run.DryRun,
		CreatedAt:    now,
	}); err != nil {
		return err
	}

	for _, a := range run.Anomalies {
		name := a.Name
		if err := s.LogActivity(ctx, &ActivityEntry{
			RunID:        run.ID,
			ActivityType: TypeAnomaly,
			Subject:      &name,
			Summary:      string(a.Kind),
			Details:      a.Detail,
			DryRun:       run.DryRun,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Debug("run journaled", "run_id", run.ID, "type", run.Type, "anomalies", len(run.Anomalies))
	}
	return nil
}

// GetRecentActivity lists activity entries with filtering.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	return s.repo.List(ctx, opts)
}

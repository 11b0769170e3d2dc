package activity

import (
	"time"

	"github.com/ganot/grantmap/internal/domain/grant"
)

// ActivityType represents the type of journal event
type ActivityType string

const (
	TypeIngestRun        ActivityType = "ingest_run"
	TypeConsolidationRun ActivityType = "consolidation_run"
	TypeCorrectionRun    ActivityType = "correction_run"
	TypeCleanRun         ActivityType = "clean_run"
	TypeValidationRun    ActivityType = "validation_run"
	TypeServeStarted     ActivityType = "serve_started"
	TypeAnomaly          ActivityType = "anomaly"
)

// ActivityEntry represents an event in the run journal
type ActivityEntry struct {
	ID           int64        `json:"id"`
	RunID        string       `json:"run_id"`
	ActivityType ActivityType `json:"type"`
	Subject      *string      `json:"subject,omitempty"` // grantee name, for anomalies
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	DryRun       bool         `json:"dry_run,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Run describes one finished batch run to be journaled.
type Run struct {
	ID        string
	Type      ActivityType
	Summary   string
	Details   any
	DryRun    bool
	Anomalies []grant.Anomaly
}

package consolidate

import (
	"context"

	"github.com/ganot/grantmap/internal/domain/activity"
)

// RunJournal records finished runs.
type RunJournal interface {
	RecordRun(ctx context.Context, run activity.Run) error
}

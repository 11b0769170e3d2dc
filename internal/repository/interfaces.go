package repository

import (
	"context"

	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
)

// ActivityRepository manages run journal persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// SearchRepository manages the full-text index over dataset entries
type SearchRepository interface {
	Reindex(ctx context.Context, grantees []grant.Grantee) error
	Search(ctx context.Context, query string, opts SearchOptions) ([]grant.SearchHit, error)
}

// SearchOptions provides filtering options for search
type SearchOptions struct {
	County string
	Status grant.Status
	Limit  int
	Offset int
}

package mocks

import (
	"context"

	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/repository"
	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SearchRepository is a mock for repository.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Reindex(ctx context.Context, grantees []grant.Grantee) error {
	args := m.Called(ctx, grantees)
	return args.Error(0)
}

func (m *SearchRepository) Search(ctx context.Context, query string, opts repository.SearchOptions) ([]grant.SearchHit, error) {
	args := m.Called(ctx, query, opts)
	if hits, ok := args.Get(0).([]grant.SearchHit); ok {
		return hits, args.Error(1)
	}
	return nil, args.Error(1)
}

// RunJournal is a mock for the journal a batch service records its runs in.
type RunJournal struct {
	mock.Mock
}

func (m *RunJournal) RecordRun(ctx context.Context, run activity.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

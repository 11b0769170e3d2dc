package activity_test

import (
	"context"
	"testing"

	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		RunID:        "run1",
		ActivityType: activity.TypeConsolidationRun,
		Summary:      "consolidated",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{RunID: "run1"}).Return([]activity.ActivityEntry{}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())
	_, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{RunID: "run1"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestActivityService_LogActivity_RequiresRunID(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), &activity.ActivityEntry{}), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), nil), activity.ErrInvalidInput)
}

func TestActivityService_RecordRun(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}

	var logged []*activity.ActivityEntry
	repo.On("Log", ctx, mock.Anything).Run(func(args mock.Arguments) {
		logged = append(logged, args.Get(1).(*activity.ActivityEntry))
	}).Return(nil)

	svc := activity.NewService(repo, nil)
	err := svc.RecordRun(ctx, activity.Run{
		ID:      "run1",
		Type:    activity.TypeConsolidationRun,
		Summary: "3 -> 2",
		Details: map[string]int{"input": 3, "output": 2},
		Anomalies: []grant.Anomaly{
			{Name: "Broken Org", Kind: grant.AnomalyInvalidAmount, Detail: "invalid amount: TBD"},
		},
	})
	require.NoError(t, err)
	require.Len(t, logged, 2)

	require.Equal(t, activity.TypeConsolidationRun, logged[0].ActivityType)
	require.JSONEq(t, `{"input": 3, "output": 2}`, logged[0].Details)
	require.Nil(t, logged[0].Subject)

	require.Equal(t, activity.TypeAnomaly, logged[1].ActivityType)
	require.Equal(t, "run1", logged[1].RunID)
	require.NotNil(t, logged[1].Subject)
	require.Equal(t, "Broken Org", *logged[1].Subject)
	require.Equal(t, string(grant.AnomalyInvalidAmount), logged[1].Summary)
}

func TestNewRunID_Unique(t *testing.T) {
	require.NotEqual(t, activity.NewRunID(), activity.NewRunID())
}

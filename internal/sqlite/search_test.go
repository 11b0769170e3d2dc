package sqlite

import (
	"context"
	"testing"

	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/repository"
	"github.com/stretchr/testify/require"
)

func indexed() []grant.Grantee {
	return []grant.Grantee{
		{Name: "Acme News", County: "Essex County", City: "Newark", FocusArea: "Civic info", Description: "Received funding to cover city hall", Status: grant.StatusActive},
		{Name: "Bee Media", County: "Camden County", FocusArea: "Health", Description: "Received funding to report on clinics", Status: grant.StatusCompleted},
		{
			Name: "Center X", County: "Essex County", City: "Montclair", Status: grant.StatusActive,
			Description: "This organization received 2 grants totaling $25,000.",
			Grants: []grant.Grant{
				{ID: 1, ProjectName: "Spanish Translation Service", Description: "translate local news"},
				{ID: 2, ProjectName: "Voting Guide", Description: "publish a voting guide"},
			},
		},
	}
}

func TestSearchRepository_Search(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewSearchRepository(db)
	require.NoError(t, repo.Reindex(ctx, indexed()))

	results, err := repo.Search(ctx, "clinic", repository.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Bee Media", results[0].Name)
	require.Contains(t, results[0].Snippet, "[clinics]")

	results, err = repo.Search(ctx, "translation", repository.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Center X", results[0].Name)

	results, err = repo.Search(ctx, "essex", repository.SearchOptions{Status: grant.StatusActive})
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = repo.Search(ctx, "received", repository.SearchOptions{County: "Camden County"})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSearchRepository_ReindexReplaces(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewSearchRepository(db)

	require.NoError(t, repo.Reindex(ctx, indexed()))
	require.NoError(t, repo.Reindex(ctx, indexed()[:1]))

	results, err := repo.Search(ctx, "clinics", repository.SearchOptions{})
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = repo.Search(ctx, "acme", repository.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSearchRepository_QueryInput(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewSearchRepository(db)
	require.NoError(t, repo.Reindex(ctx, indexed()))

	_, err := repo.Search(ctx, "   ", repository.SearchOptions{})
	require.ErrorIs(t, err, repository.ErrInvalidQuery)

	results, err := repo.Search(ctx, `"acme AND (news`, repository.SearchOptions{})
	require.NoError(t, err)
	require.Empty(t, results, "operators are searched as words")

	results, err = repo.Search(ctx, "acme news", repository.SearchOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestFTSQuery(t *testing.T) {
	require.Equal(t, `"acme"* "news"*`, ftsQuery("  acme news "))
	require.Equal(t, `"x"*`, ftsQuery(`"x" ""`))
	require.Equal(t, "", ftsQuery(""))
}

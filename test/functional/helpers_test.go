package functional_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ganot/grantmap/internal/dataset"
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/stretchr/testify/require"
)

// binaryPath finds the grantmap binary from the repo root or this directory.
func binaryPath(t *testing.T) string {
	t.Helper()
	for _, p := range []string{"./bin/grantmap", "../../bin/grantmap"} {
		if _, err := os.Stat(p); err == nil {
			abs, err := filepath.Abs(p)
			require.NoError(t, err)
			return abs
		}
	}
	t.Skip("grantmap binary not found. Run 'go build -o bin/grantmap ./cmd/grantmap' first.")
	return ""
}

// writeDataset saves a small consolidated dataset and returns its path.
func writeDataset(t *testing.T) string {
	t.Helper()

	total := grant.Dollars(25000)
	center := grant.Grantee{
		Name: "Center X", County: "Essex County", City: "Newark",
		Years: []string{"2023", "2024"}, Amount: total, TotalAmount: &total,
		Description: "This organization received 2 grants totaling $25,000.",
		Status:      grant.StatusActive, FocusArea: "Research; Translation",
		HasMultipleGrants: true, GrantCount: 2,
		Grants: []grant.Grant{
			{ID: 1, ProjectName: "Project A", Years: []string{"2023"}, Amount: grant.Dollars(20000), Description: "Received funding to study local news deserts", Status: grant.StatusCompleted},
			{ID: 2, ProjectName: "Project B", Years: []string{"2024"}, Amount: grant.Dollars(5000), Description: "Received funding to translate coverage into Spanish", Status: grant.StatusActive},
		},
	}
	center.SetLocation(40.7357, -74.1724)
	gazette := grant.Grantee{
		Name: "Hammonton Gazette", County: "Atlantic County", City: "Hammonton",
		Years: []string{"2023"}, Amount: grant.Dollars(10000),
		Description: "Received funding to expand school board coverage",
		Status:      grant.StatusCompleted, FocusArea: "Local news",
	}
	gazette.SetLocation(39.6368, -74.8021)

	ds := grant.Dataset{Grantees: []grant.Grantee{center, gazette}}
	ds.Refresh(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "functional test")

	path := filepath.Join(t.TempDir(), "grantees.json")
	require.NoError(t, dataset.Save(path, ds))
	return path
}

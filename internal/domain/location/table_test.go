package location

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTablesAreValid(t *testing.T) {
	verified, err := DefaultVerified()
	require.NoError(t, err)
	require.Contains(t, verified, "Black in Jersey")
	require.Equal(t, "Trenton", verified["Black in Jersey"].City)

	hammonton := verified["Hammonton Gazette"]
	require.Empty(t, hammonton.County)
	p, ok := hammonton.Point()
	require.True(t, ok)
	require.Equal(t, Point{Lat: 39.6368, Lng: -74.8021}, p)

	places, err := DefaultPlaces()
	require.NoError(t, err)
	require.Len(t, places, 87)
	require.Equal(t, "Jersey City", places["Saint Peter's University (Slice of Culture)"].City)
	require.Equal(t, "Camden", places["Camden Parent & Student Union (CPSU)"].City)

	for name, c := range places {
		_, ok := c.Point()
		require.True(t, ok, "%s has no coordinates", name)
	}
}

func TestParseTable_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"latitude out of range", "Org:\n  lat: 91\n  lng: -74\n"},
		{"longitude out of range", "Org:\n  lat: 40\n  lng: -181\n"},
		{"half a coordinate", "Org:\n  lat: 40\n"},
		{"empty entry", "Org:\n  reason: nothing\n"},
		{"blank name", "\" \":\n  city: Newark\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidEntry)
		})
	}

	_, err := ParseTable([]byte("Org:\n  town: Newark\n"))
	require.ErrorIs(t, err, ErrInvalidTable)

	_, err = ParseTable([]byte("Org:\n  city: A\nOrg:\n  city: B\n"))
	require.ErrorIs(t, err, ErrInvalidTable)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Org:\n  county: Union County\n"), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	require.Equal(t, Table{"Org": {County: "Union County"}}, table)

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseTable_Empty(t *testing.T) {
	table, err := ParseTable(nil)
	require.NoError(t, err)
	require.Empty(t, table)
}

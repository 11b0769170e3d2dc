package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sample() grant.Dataset {
	g := grant.Grantee{
		Name:        "Acme News",
		County:      "Essex County",
		Years:       []string{"2022", "2023"},
		Amount:      grant.Dollars(1500),
		Description: "Received funding to cover <local> news & schools",
		Status:      grant.StatusActive,
		FocusArea:   "X",
	}
	g.SetLocation(40.7357, -74.1724)
	ds := grant.Dataset{Grantees: []grant.Grantee{g}, Metadata: grant.Metadata{DataSource: "grants.csv"}}
	ds.Refresh(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), "note")
	return ds
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "grantees.json")
	ds := sample()

	require.NoError(t, Save(path, ds))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "\n  \"grantees\": [\n    {\n      \"name\": \"Acme News\"")
	require.Contains(t, string(raw), "<local> news & schools")

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(ds, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
}

func TestSave_KeepsOldFileOnEncodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grantees.json")
	require.NoError(t, Save(path, sample()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	bad := sample()
	bad.Metadata.LastUpdated = time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Error(t, Save(path, bad))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte("{not json"), 0o644))
	_, err = Load(invalid)
	require.ErrorIs(t, err, ErrInvalidJSON)

	noGrantees := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(noGrantees, []byte(`{"metadata":{}}`), 0o644))
	_, err = Load(noGrantees)
	require.ErrorIs(t, err, ErrMissingGrantees)
}

func TestDecode_KeepsMalformedAmounts(t *testing.T) {
	ds, err := Decode([]byte(`{"grantees":[{"name":"A","amount":"TBD","years":[]}],"metadata":{}}`))
	require.NoError(t, err)
	require.False(t, ds.Grantees[0].Amount.Valid())

	out, err := Encode(ds)
	require.NoError(t, err)
	require.Contains(t, string(out), `"amount": "TBD"`)
}

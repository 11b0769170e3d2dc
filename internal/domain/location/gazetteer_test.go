package location

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGazetteer_Resolve(t *testing.T) {
	g, err := DefaultGazetteer()
	require.NoError(t, err)

	tests := []struct {
		name, org, area string
		want            Resolution
	}{
		{
			name: "place table wins",
			org:  "Hopeloft, Inc.", area: "Cumberland County",
			want: Resolution{Point: Point{Lat: 39.4273, Lng: -75.2341}, City: "Bridgeton", Source: SourcePlace},
		},
		{
			name: "city in organization name",
			org:  "Trenton Monitor", area: "Mercer County",
			want: Resolution{Point: Point{Lat: 40.2206, Lng: -74.7597}, City: "Trenton", Source: SourceCity},
		},
		{
			name: "city in service area",
			org:  "Neighborhood Voices", area: "Paterson",
			want: Resolution{Point: Point{Lat: 40.9168, Lng: -74.1718}, City: "Paterson", Source: SourceCity},
		},
		{
			name: "county centroid",
			org:  "Shore Report", area: "Ocean County",
			want: Resolution{Point: Point{Lat: 39.9272, Lng: -74.1965}, Source: SourceArea},
		},
		{
			name: "region centroid",
			org:  "Pinelands Post", area: "South Jersey",
			want: Resolution{Point: Point{Lat: 39.5501, Lng: -75.0}, Source: SourceArea},
		},
		{
			name: "state centre",
			org:  "Somewhere", area: "",
			want: Resolution{Point: Point{Lat: 40.0583, Lng: -74.4057}, Source: SourceDefault},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, g.Resolve(tt.org, tt.area))
		})
	}
}

func TestParseGazetteer_Rejects(t *testing.T) {
	_, err := ParseGazetteer([]byte("default: {lat: 100, lng: 0}\n"), nil)
	require.ErrorIs(t, err, ErrInvalidEntry)

	_, err = ParseGazetteer([]byte("default: {lat: 40, lng: -74}\ncities:\n  - name: X\n    lat: 40\n    lng: 200\n"), nil)
	require.ErrorIs(t, err, ErrInvalidEntry)

	_, err = ParseGazetteer([]byte("default: {lat: 40, lng: -74}\nstates: []\n"), nil)
	require.ErrorIs(t, err, ErrInvalidTable)
}

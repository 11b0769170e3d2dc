package ingest

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/domain/location"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultActiveSince is the first year whose grants count as active.
const DefaultActiveSince = 2024

// Geocoder locates a raw record.
type Geocoder interface {
	Resolve(name, serviceArea string) location.Resolution
}

// Converter turns spreadsheet rows into dataset entries.
type Converter struct {
	Geocoder         Geocoder
	ActiveSince      int
	IncludeCancelled bool
}

// Convert builds one entry per row, sorted by name. Unparseable amounts are
// kept verbatim and reported.
func (c Converter) Convert(rows []Row) ([]grant.Grantee, []grant.Anomaly) {
	activeSince := c.ActiveSince
	if activeSince == 0 {
		activeSince = DefaultActiveSince
	}

	out := make([]grant.Grantee, 0, len(rows))
	var anomalies []grant.Anomaly
	for _, row := range rows {
		if row.Cancelled && !c.IncludeCancelled {
			continue
		}

		amount, err := grant.ParseDollars(row.Amount)
		if err != nil {
			amount = grant.InvalidAmount(row.Amount)
			anomalies = append(anomalies, grant.Anomaly{
				Name:   row.Name,
				Kind:   grant.AnomalyInvalidAmount,
				Detail: fmt.Sprintf("line %d: %v", row.Line, err),
			})
		}

		years := splitYears(row.Years)
		g := grant.Grantee{
			Name:        row.Name,
			County:      row.ServiceArea,
			Years:       years,
			Amount:      amount,
			Description: strings.Join(strings.Fields(row.Description), " "),
			Status:      status(row.Cancelled, years, activeSince),
			Website:     row.Website,
			FocusArea:   row.FocusArea,
		}
		if c.Geocoder != nil {
			res := c.Geocoder.Resolve(row.Name, row.ServiceArea)
			g.SetLocation(res.Lat, res.Lng)
			g.City = res.City
		}
		out = append(out, g)
	}

	col := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b grant.Grantee) int {
		return col.CompareString(a.Name, b.Name)
	})
	return out, anomalies
}

func splitYears(s string) []string {
	years := []string{}
	for _, y := range strings.Split(s, ",") {
		if y = strings.TrimSpace(y); y != "" {
			years = append(years, y)
		}
	}
	return years
}

// status derives the lifecycle state: cancelled when marked, active when the
// latest year is at least activeSince, completed otherwise.
func status(cancelled bool, years []string, activeSince int) grant.Status {
	if cancelled {
		return grant.StatusCancelled
	}
	latest := 0
	for _, y := range years {
		if n, err := strconv.Atoi(y); err == nil && n > latest {
			latest = n
		}
	}
	if latest >= activeSince {
		return grant.StatusActive
	}
	return grant.StatusCompleted
}

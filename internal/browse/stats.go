package browse

import "github.com/ganot/grantmap/internal/domain/grant"

// Stats are the headline numbers shown above the map.
type Stats struct {
	Grantees     int          `json:"totalGrantees"`
	TotalFunding grant.Amount `json:"totalFunding"`
	Active       int          `json:"activeProjects"`
}

// ComputeStats counts entries, sums their valid amounts and counts active ones.
func ComputeStats(grantees []grant.Grantee) Stats {
	s := Stats{Grantees: len(grantees), TotalFunding: grant.TotalFunding(grantees)}
	for _, g := range grantees {
		if g.Status == grant.StatusActive {
			s.Active++
		}
	}
	return s
}

// FundingLabel renders the total as "$1,500".
func (s Stats) FundingLabel() string {
	return s.TotalFunding.String()
}

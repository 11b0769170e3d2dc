package browse

import (
	"slices"

	"github.com/ganot/grantmap/internal/domain/grant"
)

// Any is the filter value that disables a filter, as does the empty string.
const Any = "all"

// Filters narrows the visible entries. Each field is an exact match.
type Filters struct {
	Year      string `json:"year,omitempty"`
	County    string `json:"county,omitempty"`
	FocusArea string `json:"focusArea,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Match reports whether g passes every active filter.
func (f Filters) Match(g grant.Grantee) bool {
	if active(f.Year) && !slices.Contains(g.Years, f.Year) {
		return false
	}
	if active(f.County) && g.County != f.County {
		return false
	}
	if active(f.FocusArea) && g.FocusArea != f.FocusArea {
		return false
	}
	if active(f.Status) && string(g.Status) != f.Status {
		return false
	}
	return true
}

// IsZero reports whether no filter is active.
func (f Filters) IsZero() bool {
	return !active(f.Year) && !active(f.County) && !active(f.FocusArea) && !active(f.Status)
}

func active(v string) bool {
	return v != "" && v != Any
}

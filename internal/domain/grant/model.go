package grant

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a grant
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Grantee is one entry of the dataset: a raw grant record before consolidation,
// or a consolidated organization afterwards.
type Grantee struct {
	Name              string   `json:"name"`
	County            string   `json:"county"`
	City              string   `json:"city,omitempty"`
	Years             []string `json:"years"`
	Amount            Amount   `json:"amount"`
	TotalAmount       *Amount  `json:"totalAmount,omitempty"`
	Description       string   `json:"description"`
	Lat               *float64 `json:"lat,omitempty"`
	Lng               *float64 `json:"lng,omitempty"`
	Status            Status   `json:"status"`
	Website           string   `json:"website,omitempty"`
	FocusArea         string   `json:"focusArea"`
	FocusAreas        []string `json:"focusAreas,omitempty"`
	HasMultipleGrants bool     `json:"hasMultipleGrants,omitempty"`
	GrantCount        int      `json:"grantCount,omitempty"`
	Grants            []Grant  `json:"grants,omitempty"`
}

// Grant is one constituent grant kept inside a consolidated grantee
type Grant struct {
	ID          int      `json:"id"`
	ProjectName string   `json:"projectName,omitempty"`
	Years       []string `json:"years"`
	Amount      Amount   `json:"amount"`
	Description string   `json:"description"`
	FocusArea   string   `json:"focusArea"`
	Status      Status   `json:"status"`
}

// Location returns the entry's coordinates and whether both are present.
func (g Grantee) Location() (lat, lng float64, ok bool) {
	if g.Lat == nil || g.Lng == nil {
		return 0, 0, false
	}
	return *g.Lat, *g.Lng, true
}

// SetLocation replaces both coordinates.
func (g *Grantee) SetLocation(lat, lng float64) {
	g.Lat = &lat
	g.Lng = &lng
}

// Clone returns a deep copy so callers can rewrite an entry without aliasing
// slices of the source dataset.
func (g Grantee) Clone() Grantee {
	out := g
	out.Years = cloneStrings(g.Years)
	out.FocusAreas = cloneStrings(g.FocusAreas)
	if g.TotalAmount != nil {
		total := *g.TotalAmount
		out.TotalAmount = &total
	}
	if g.Lat != nil {
		lat := *g.Lat
		out.Lat = &lat
	}
	if g.Lng != nil {
		lng := *g.Lng
		out.Lng = &lng
	}
	if g.Grants != nil {
		out.Grants = make([]Grant, len(g.Grants))
		for i, gr := range g.Grants {
			gr.Years = cloneStrings(gr.Years)
			out.Grants[i] = gr
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Metadata summarizes the dataset contents.
type Metadata struct {
	TotalGrantees int       `json:"totalGrantees"`
	TotalFunding  Amount    `json:"totalFunding"`
	LastUpdated   time.Time `json:"lastUpdated"`
	Note          string    `json:"note,omitempty"`
	DataSource    string    `json:"dataSource,omitempty"`
}

// Dataset is the whole-file document shared by every pipeline stage.
type Dataset struct {
	Grantees []Grantee `json:"grantees"`
	Metadata Metadata  `json:"metadata"`
}

// Refresh recomputes the count and funding sum from the grantee list and stamps
// the update time. An empty note leaves the existing note in place.
func (d *Dataset) Refresh(now time.Time, note string) {
	d.Metadata.TotalGrantees = len(d.Grantees)
	d.Metadata.TotalFunding = TotalFunding(d.Grantees)
	d.Metadata.LastUpdated = now.UTC()
	if note != "" {
		d.Metadata.Note = note
	}
}

// TotalFunding sums the valid amounts of the given entries exactly.
func TotalFunding(grantees []Grantee) Amount {
	total := FromDecimal(decimal.Zero)
	for _, g := range grantees {
		total = total.Add(g.Amount)
	}
	return total
}

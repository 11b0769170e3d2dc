package browse

import "github.com/ganot/grantmap/internal/domain/grant"

// Marker is the map pin of one entry with its hover tooltip.
type Marker struct {
	Label  string       `json:"label"`
	Name   string       `json:"name"`
	County string       `json:"county"`
	Amount string       `json:"amount"`
	Status grant.Status `json:"status"`
	Lat    *float64     `json:"lat,omitempty"`
	Lng    *float64     `json:"lng,omitempty"`
}

// NewMarker builds the pin for g. Entries without coordinates get no position.
func NewMarker(g grant.Grantee) Marker {
	m := Marker{
		Label:  Initials(g.Name),
		Name:   g.Name,
		County: g.County,
		Amount: AmountLabel(g.Amount),
		Status: g.Status,
	}
	if lat, lng, ok := g.Location(); ok {
		m.Lat, m.Lng = &lat, &lng
	}
	return m
}

// Markers builds the pins for the entries matching f.
func (c *Catalog) Markers(f Filters) []Marker {
	gs := c.Filter(f)
	out := make([]Marker, len(gs))
	for i, g := range gs {
		out[i] = NewMarker(g)
	}
	return out
}

// Initials is the marker label: the first letters of the name's words that
// are capitals A to Z, at most two.
func Initials(name string) string {
	var out []byte
	word := true
	for i := 0; i < len(name) && len(out) < 2; i++ {
		ch := name[i]
		if ch == ' ' {
			word = true
			continue
		}
		if word && ch >= 'A' && ch <= 'Z' {
			out = append(out, ch)
		}
		word = false
	}
	return string(out)
}

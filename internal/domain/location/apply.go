package location

import (
	"sort"

	"github.com/ganot/grantmap/internal/domain/grant"
)

// Apply overwrites the location fields of every entry whose name exactly
// matches a table key. Entries without a match are copied unchanged. It also
// returns the table names that matched no entry, sorted.
func Apply(ds grant.Dataset, table Table) (grant.Dataset, []Change, []string) {
	out := grant.Dataset{Grantees: make([]grant.Grantee, len(ds.Grantees)), Metadata: ds.Metadata}
	matched := make(map[string]bool, len(table))
	var changes []Change

	for i, g := range ds.Grantees {
		g = g.Clone()
		if c, ok := table[g.Name]; ok {
			matched[g.Name] = true
			before := placeOf(g)
			correct(&g, c)
			changes = append(changes, Change{Name: g.Name, Reason: c.Reason, Before: before, After: placeOf(g)})
		}
		out.Grantees[i] = g
	}

	var unmatched []string
	for name := range table {
		if !matched[name] {
			unmatched = append(unmatched, name)
		}
	}
	sort.Strings(unmatched)
	return out, changes, unmatched
}

func correct(g *grant.Grantee, c Correction) {
	if c.City != "" {
		g.City = c.City
	}
	if c.County != "" {
		g.County = c.County
	}
	if p, ok := c.Point(); ok {
		g.SetLocation(p.Lat, p.Lng)
	}
}

func placeOf(g grant.Grantee) Place {
	p := Place{City: g.City, County: g.County}
	if lat, lng, ok := g.Location(); ok {
		p.Lat, p.Lng = &lat, &lng
	}
	return p
}

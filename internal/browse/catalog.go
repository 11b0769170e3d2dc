// Package browse is the presentation model of the grantee map: an immutable
// catalog of the dataset plus the single-owner state a viewer drives.
package browse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ganot/grantmap/internal/domain/grant"
)

// Regions are service areas that are not counties. They follow the sorted
// counties in the county filter, in this order.
var Regions = []string{"Statewide", "North Jersey", "Central Jersey", "South Jersey"}

// Catalog is a read-only snapshot of a dataset, safe for concurrent use.
type Catalog struct {
	grantees []grant.Grantee
	metadata grant.Metadata
	byName   map[string]int
	err      error
}

// NewCatalog indexes a copy of ds.
func NewCatalog(ds grant.Dataset) *Catalog {
	c := &Catalog{
		grantees: make([]grant.Grantee, len(ds.Grantees)),
		metadata: ds.Metadata,
		byName:   make(map[string]int, len(ds.Grantees)),
	}
	for i, g := range ds.Grantees {
		c.grantees[i] = g.Clone()
		key := strings.ToLower(g.Name)
		if _, ok := c.byName[key]; !ok {
			c.byName[key] = i
		}
	}
	return c
}

// Degraded returns an empty catalog standing in for a dataset that could not
// be loaded.
func Degraded(err error) *Catalog {
	return &Catalog{byName: map[string]int{}, err: err}
}

// Load builds a catalog from load, degrading instead of failing.
func Load(load func() (grant.Dataset, error)) *Catalog {
	ds, err := load()
	if err != nil {
		return Degraded(err)
	}
	return NewCatalog(ds)
}

// Err reports why the catalog is degraded, or nil.
func (c *Catalog) Err() error { return c.err }

// ErrorMessage is the viewer-facing text of a degraded catalog.
func (c *Catalog) ErrorMessage() string {
	if c.err == nil {
		return ""
	}
	return fmt.Sprintf("Unable to load map data: %v", c.err)
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.grantees) }

// Metadata returns the dataset metadata.
func (c *Catalog) Metadata() grant.Metadata { return c.metadata }

// All returns a copy of every entry.
func (c *Catalog) All() []grant.Grantee {
	return c.Filter(Filters{})
}

// Lookup finds an entry by name, ignoring case, the way the ?grantee= link
// parameter is resolved.
func (c *Catalog) Lookup(name string) (grant.Grantee, bool) {
	i, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return grant.Grantee{}, false
	}
	return c.grantees[i].Clone(), true
}

// Filter returns the entries matching f, in dataset order.
func (c *Catalog) Filter(f Filters) []grant.Grantee {
	out := []grant.Grantee{}
	for _, g := range c.grantees {
		if f.Match(g) {
			out = append(out, g.Clone())
		}
	}
	return out
}

// CountyOptions lists the county filter values: the counties present in the
// dataset sorted, then every region.
func (c *Catalog) CountyOptions() []string {
	regions := make(map[string]bool, len(Regions))
	for _, r := range Regions {
		regions[r] = true
	}
	seen := map[string]bool{}
	var counties []string
	for _, g := range c.grantees {
		if g.County == "" || regions[g.County] || seen[g.County] {
			continue
		}
		seen[g.County] = true
		counties = append(counties, g.County)
	}
	sort.Strings(counties)
	return append(counties, Regions...)
}

// FocusAreaOptions lists the distinct focus areas, sorted.
func (c *Catalog) FocusAreaOptions() []string {
	return c.distinct(func(g grant.Grantee) []string { return []string{g.FocusArea} }, false)
}

// YearOptions lists the distinct grant years, newest first.
func (c *Catalog) YearOptions() []string {
	return c.distinct(func(g grant.Grantee) []string { return g.Years }, true)
}

func (c *Catalog) distinct(values func(grant.Grantee) []string, desc bool) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, g := range c.grantees {
		for _, v := range values(g) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	if desc {
		sort.Sort(sort.Reverse(sort.StringSlice(out)))
	} else {
		sort.Strings(out)
	}
	return out
}

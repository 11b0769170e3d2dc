package consolidate

import (
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/domain/normalize"
)

// Group is the set of records that share one grouping key. The first record
// supplies the canonical name and the location of the merged result.
type Group struct {
	Key       string
	Canonical string
	Records   []grant.Grantee
}

// GroupRecords buckets records by the normalizer's key. Groups come back in
// the order their first record appeared; records keep input order within a
// group.
func GroupRecords(records []grant.Grantee, n normalize.Normalizer) []Group {
	index := make(map[string]int, len(records))
	groups := make([]Group, 0, len(records))
	for _, rec := range records {
		key := n.Key(rec.Name)
		if i, ok := index[key]; ok {
			groups[i].Records = append(groups[i].Records, rec)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{
			Key:       key,
			Canonical: n.Canonical(rec.Name),
			Records:   []grant.Grantee{rec},
		})
	}
	return groups
}

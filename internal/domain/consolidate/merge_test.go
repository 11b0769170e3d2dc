package consolidate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/domain/normalize"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func record(name string, amount float64, years []string, focus string, status grant.Status, desc string) grant.Grantee {
	g := grant.Grantee{
		Name:        name,
		County:      "Essex County",
		Years:       years,
		Amount:      grant.Dollars(amount),
		Description: desc,
		FocusArea:   focus,
		Status:      status,
	}
	g.SetLocation(40.7357, -74.1724)
	return g
}

func mergeWith(t *testing.T, rule normalize.Rule, records ...grant.Grantee) grant.Grantee {
	t.Helper()
	n, err := normalize.ForRule(string(rule))
	require.NoError(t, err)
	groups := GroupRecords(records, n)
	require.Len(t, groups, 1)
	merged, err := NewMerger(DefaultPolicy(rule)).Merge(groups[0])
	require.NoError(t, err)
	return merged
}

func TestMerge_CaseInsensitiveScenario(t *testing.T) {
	merged := mergeWith(t, normalize.RuleCaseInsensitive,
		record("Acme News", 1000, []string{"2022"}, "X", grant.StatusCompleted, "short"),
		record("ACME NEWS", 500, []string{"2023"}, "X", grant.StatusActive, "a longer description"),
	)

	require.Equal(t, "Acme News", merged.Name)
	require.Equal(t, "$1,500", merged.Amount.String())
	require.NotNil(t, merged.TotalAmount)
	require.Equal(t, "$1,500", merged.TotalAmount.String())
	require.Equal(t, []string{"2022", "2023"}, merged.Years)
	require.Equal(t, grant.StatusActive, merged.Status)
	require.Equal(t, 2, merged.GrantCount)
	require.True(t, merged.HasMultipleGrants)
	require.Equal(t, "X", merged.FocusArea)
	require.Equal(t, []string{"X"}, merged.FocusAreas)
	require.Equal(t, "a longer description", merged.Description)

	want := []grant.Grant{
		{ID: 1, Years: []string{"2022"}, Amount: grant.Dollars(1000), Description: "short", FocusArea: "X", Status: grant.StatusCompleted},
		{ID: 2, Years: []string{"2023"}, Amount: grant.Dollars(500), Description: "a longer description", FocusArea: "X", Status: grant.StatusActive},
	}
	if diff := cmp.Diff(want, merged.Grants); diff != "" {
		t.Errorf("grants mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_QualifierProjects(t *testing.T) {
	merged := mergeWith(t, normalize.RuleQualifier,
		record("Center X: Project A", 20000, []string{"2023"}, "Research", grant.StatusCompleted, "A"),
		record("Center X: Project B", 5000, []string{"2024"}, "Translation", grant.StatusCompleted, "B"),
	)

	require.Equal(t, "Center X", merged.Name)
	require.Equal(t, 2, merged.GrantCount)
	require.Len(t, merged.Grants, 2)
	require.Equal(t, "Project A", merged.Grants[0].ProjectName)
	require.Equal(t, "Project B", merged.Grants[1].ProjectName)
	require.Equal(t, "This organization received 2 grants totaling $25,000.", merged.Description)
	require.Equal(t, "Research; Translation", merged.FocusArea)
	require.Equal(t, []string{"Research", "Translation"}, merged.FocusAreas)
	require.Equal(t, grant.StatusCompleted, merged.Status)
}

func TestMerge_QualifierDuplicatesKeepLongestDescription(t *testing.T) {
	merged := mergeWith(t, normalize.RuleQualifier,
		record("Center X", 100, []string{"2023"}, "R", grant.StatusCompleted, "tiny"),
		record("center x", 100, []string{"2023"}, "R", grant.StatusCompleted, "much longer text"),
	)
	require.Equal(t, "much longer text", merged.Description)
	require.Equal(t, []string{"2023"}, merged.Years)
	require.Equal(t, FallbackProjectName, merged.Grants[0].ProjectName)
}

func TestMerge_SuffixUsesSummaryAndFocusProjectNames(t *testing.T) {
	merged := mergeWith(t, normalize.RuleSuffix,
		record("Hopeloft, Inc.", 1234.5, []string{"2024", "2022"}, "Civic info", grant.StatusCompleted, "x"),
		record("Hopeloft", 1000, []string{"2022"}, "", grant.StatusCancelled, "y"),
	)
	require.Equal(t, "Hopeloft", merged.Name)
	require.Equal(t, "This organization received 2 grants totaling $2,234.50.", merged.Description)
	require.Equal(t, []string{"2022", "2024"}, merged.Years)
	require.Equal(t, "Civic info", merged.Grants[0].ProjectName)
	require.Equal(t, FallbackProjectName, merged.Grants[1].ProjectName)
	require.Equal(t, grant.StatusCompleted, merged.Status, "first constituent's status when none active")
}

func TestMerge_LocationFromFirstConstituent(t *testing.T) {
	first := record("Acme", 1, []string{"2022"}, "X", grant.StatusCompleted, "")
	first.City = "Newark"
	first.Website = "acme.example"
	second := record("acme", 1, []string{"2022"}, "X", grant.StatusCompleted, "")
	second.City = "Trenton"
	second.County = "Mercer County"
	second.SetLocation(40.2206, -74.7597)

	merged := mergeWith(t, normalize.RuleCaseInsensitive, first, second)
	lat, lng, ok := merged.Location()
	require.True(t, ok)
	require.Equal(t, 40.7357, lat)
	require.Equal(t, -74.1724, lng)
	require.Equal(t, "Newark", merged.City)
	require.Equal(t, "Essex County", merged.County)
	require.Equal(t, "acme.example", merged.Website)
}

func TestMerge_SingleRecord(t *testing.T) {
	rec := record("Example Org, Inc.", 700, []string{"2023"}, "X", grant.StatusActive, "d")

	merged, err := NewMerger(DefaultPolicy(normalize.RuleSuffix)).Merge(Group{Canonical: "Example Org", Records: []grant.Grantee{rec}})
	require.NoError(t, err)
	require.Equal(t, "Example Org", merged.Name)
	require.False(t, merged.HasMultipleGrants)
	require.Nil(t, merged.Grants)
	require.Nil(t, merged.TotalAmount)
	require.Equal(t, "$700", merged.Amount.String())

	qualified := record("Center X: Project A", 10, []string{"2023"}, "X", grant.StatusActive, "d")
	merged, err = NewMerger(DefaultPolicy(normalize.RuleQualifier)).Merge(Group{Canonical: "Center X", Records: []grant.Grantee{qualified}})
	require.NoError(t, err)
	require.Equal(t, "Center X: Project A", merged.Name)
}

func TestMerge_InvalidAmountIsRejected(t *testing.T) {
	bad := record("Acme", 0, []string{"2022"}, "X", grant.StatusCompleted, "")
	bad.Amount = grant.InvalidAmount("TBD")
	good := record("ACME", 100, []string{"2023"}, "X", grant.StatusCompleted, "")

	_, err := NewMerger(DefaultPolicy(normalize.RuleCaseInsensitive)).Merge(Group{Canonical: "Acme", Records: []grant.Grantee{bad, good}})
	require.ErrorIs(t, err, grant.ErrInvalidAmount)

	_, err = NewMerger(DefaultPolicy(normalize.RuleCaseInsensitive)).Merge(Group{})
	require.ErrorIs(t, err, ErrEmptyGroup)
}

func TestMerge_TotalsAndYearsInvariants(t *testing.T) {
	records := []grant.Grantee{
		record("Org", 10.25, []string{"2024", "2022"}, "A", grant.StatusCompleted, ""),
		record("ORG", 0, []string{"2022"}, "B", grant.StatusCompleted, ""),
		record("org", 300, []string{"2023", "2024"}, "A", grant.StatusCompleted, ""),
	}
	merged := mergeWith(t, normalize.RuleCaseInsensitive, records...)

	sum := grant.TotalFunding(records)
	require.True(t, sum.Equal(merged.Amount), "amount %s, sum %s", merged.Amount, sum)
	require.True(t, sum.Equal(*merged.TotalAmount))
	require.Equal(t, "$310.25", merged.Amount.String())
	require.Equal(t, []string{"2022", "2023", "2024"}, merged.Years)
	require.Equal(t, "A; B", merged.FocusArea)
}

func TestMerge_ReconsolidationIsStable(t *testing.T) {
	records := []grant.Grantee{
		record("Center X: Project A", 100, []string{"2022"}, "R", grant.StatusCompleted, "a"),
		record("Center X: Project B", 200, []string{"2023"}, "R", grant.StatusActive, "b"),
	}
	once := mergeWith(t, normalize.RuleQualifier, records...)

	again, err := NewMerger(DefaultPolicy(normalize.RuleQualifier)).Merge(Group{Canonical: "Center X", Records: []grant.Grantee{once}})
	require.NoError(t, err)
	if diff := cmp.Diff(once, again); diff != "" {
		t.Errorf("single merged entry changed (-first +second):\n%s", diff)
	}

	third := record("Center X: Project C", 50, []string{"2024"}, "R", grant.StatusCompleted, "c")
	grown := mergeWith(t, normalize.RuleQualifier, once, third)
	require.Equal(t, 3, grown.GrantCount)
	require.Equal(t, "$350", grown.Amount.String())
	require.Equal(t, []string{"Project A", "Project B", "Project C"},
		[]string{grown.Grants[0].ProjectName, grown.Grants[1].ProjectName, grown.Grants[2].ProjectName})
	require.Equal(t, []int{1, 2, 3}, []int{grown.Grants[0].ID, grown.Grants[1].ID, grown.Grants[2].ID})
}

func TestParseDescriptionPolicy(t *testing.T) {
	p, err := ParseDescriptionPolicy("Summary")
	require.NoError(t, err)
	require.Equal(t, DescriptionSummary, p)

	p, err = ParseDescriptionPolicy("")
	require.NoError(t, err)
	require.Equal(t, DescriptionPolicy(""), p)

	_, err = ParseDescriptionPolicy("last-write")
	require.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestMerge_SumsCentsExactly(t *testing.T) {
	a := record("Acme News", 0, []string{"2022"}, "X", grant.StatusCompleted, "")
	b := record("ACME NEWS", 0, []string{"2023"}, "X", grant.StatusCompleted, "")
	var err error
	a.Amount, err = grant.ParseDollars("0.10")
	require.NoError(t, err)
	b.Amount, err = grant.ParseDollars("0.20")
	require.NoError(t, err)

	merged := mergeWith(t, normalize.RuleCaseInsensitive, a, b)

	data, err := json.Marshal(merged)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Equal(t, "0.3", string(fields["amount"]))
	require.Equal(t, "0.3", string(fields["totalAmount"]))

	ds := grant.Dataset{Grantees: []grant.Grantee{merged}}
	ds.Refresh(time.Now(), "")
	data, err = json.Marshal(ds.Metadata)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Equal(t, "0.3", string(fields["totalFunding"]))
}

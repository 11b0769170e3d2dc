package consolidate

import (
	"fmt"
	"strings"

	"github.com/ganot/grantmap/internal/domain/normalize"
)

// DescriptionPolicy selects how a merged entry's description is chosen.
type DescriptionPolicy string

const (
	// DescriptionLongest keeps the longest constituent description; ties go to
	// the earliest constituent.
	DescriptionLongest DescriptionPolicy = "longest"
	// DescriptionSummary always writes a generated funding summary.
	DescriptionSummary DescriptionPolicy = "summary"
	// DescriptionSummaryIfQualified writes the summary when constituent names
	// differ (separate projects) and keeps the longest description otherwise.
	DescriptionSummaryIfQualified DescriptionPolicy = "summary-if-qualified"
)

// ProjectNaming selects where per-grant project names come from.
type ProjectNaming string

const (
	ProjectNone          ProjectNaming = "none"
	ProjectFromQualifier ProjectNaming = "qualifier"
	ProjectFromFocusArea ProjectNaming = "focus-area"
)

// FallbackProjectName labels a grant that has no project of its own.
const FallbackProjectName = "General funding"

// Policy holds the rule-dependent choices of a merge.
type Policy struct {
	Description   DescriptionPolicy
	ProjectNames  ProjectNaming
	RenameSingles bool
	Note          string
}

// DefaultPolicy returns the merge policy that goes with a normalization rule.
func DefaultPolicy(rule normalize.Rule) Policy {
	switch rule {
	case normalize.RuleSuffix:
		return Policy{
			Description:   DescriptionSummary,
			ProjectNames:  ProjectFromFocusArea,
			RenameSingles: true,
			Note:          "Organizations with business suffix variations (Inc., LLC, etc.) have been consolidated. Project-specific details are preserved.",
		}
	case normalize.RuleQualifier:
		return Policy{
			Description:  DescriptionSummaryIfQualified,
			ProjectNames: ProjectFromQualifier,
			Note:         "Organizations with multiple grants/projects have been consolidated. Project-specific details are preserved in grant information.",
		}
	case normalize.RuleCaseInsensitive:
		return Policy{
			Description:   DescriptionLongest,
			ProjectNames:  ProjectNone,
			RenameSingles: true,
			Note:          "Duplicate entries have been consolidated (case-insensitive). Organizations with multiple grants show combined information.",
		}
	default:
		return Policy{
			Description:   DescriptionLongest,
			ProjectNames:  ProjectNone,
			RenameSingles: true,
			Note:          "Duplicate entries have been consolidated. Organizations with multiple grants show combined information.",
		}
	}
}

// ParseDescriptionPolicy validates a configured description policy. An empty
// value returns the empty policy, meaning "use the rule default".
func ParseDescriptionPolicy(s string) (DescriptionPolicy, error) {
	switch p := DescriptionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DescriptionLongest, DescriptionSummary, DescriptionSummaryIfQualified:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

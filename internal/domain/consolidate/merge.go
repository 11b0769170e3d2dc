package consolidate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/domain/normalize"
	"github.com/shopspring/decimal"
)

// Merger folds a group of records into one consolidated entry.
type Merger struct {
	policy Policy
}

// NewMerger creates a merger applying policy.
func NewMerger(policy Policy) *Merger {
	return &Merger{policy: policy}
}

// part is one constituent grant. Records that are already consolidated are
// expanded into their grants so merging merged data stays stable.
type part struct {
	fullName    string
	projectName string
	expanded    bool
	years       []string
	amount      grant.Amount
	description string
	focusArea   string
	status      grant.Status
}

func expand(records []grant.Grantee) []part {
	var parts []part
	for _, rec := range records {
		if len(rec.Grants) == 0 {
			parts = append(parts, part{
				fullName:    rec.Name,
				years:       rec.Years,
				amount:      rec.Amount,
				description: rec.Description,
				focusArea:   rec.FocusArea,
				status:      rec.Status,
			})
			continue
		}
		for _, gr := range rec.Grants {
			fullName := rec.Name
			if gr.ProjectName != "" {
				fullName += ": " + gr.ProjectName
			}
			parts = append(parts, part{
				fullName:    fullName,
				projectName: gr.ProjectName,
				expanded:    true,
				years:       gr.Years,
				amount:      gr.Amount,
				description: gr.Description,
				focusArea:   gr.FocusArea,
				status:      gr.Status,
			})
		}
	}
	return parts
}

// Merge consolidates one group. A single record passes through, renamed to the
// canonical form when the policy says so. A group holding a constituent with
// an invalid amount is not merged and yields grant.ErrInvalidAmount.
func (m *Merger) Merge(g Group) (grant.Grantee, error) {
	switch len(g.Records) {
	case 0:
		return grant.Grantee{}, ErrEmptyGroup
	case 1:
		out := g.Records[0].Clone()
		if m.policy.RenameSingles {
			out.Name = g.Canonical
		}
		return out, nil
	}

	parts := expand(g.Records)
	for _, p := range parts {
		if !p.amount.Valid() {
			return grant.Grantee{}, fmt.Errorf("%w: %q has amount %s", grant.ErrInvalidAmount, p.fullName, p.amount)
		}
	}

	// Location, website and any other fields come from the first record only.
	out := g.Records[0].Clone()
	out.Name = g.Canonical
	out.Years = unionYears(parts)

	total := grant.FromDecimal(decimal.Zero)
	for _, p := range parts {
		total = total.Add(p.amount)
	}
	out.Amount = total
	totalAmount := total
	out.TotalAmount = &totalAmount

	out.Description = m.description(parts, total)

	focusAreas := distinctFocusAreas(parts)
	out.FocusAreas = focusAreas
	out.FocusArea = strings.Join(focusAreas, "; ")

	out.Status = parts[0].status
	for _, p := range parts {
		if p.status == grant.StatusActive {
			out.Status = grant.StatusActive
			break
		}
	}

	out.Grants = make([]grant.Grant, len(parts))
	for i, p := range parts {
		out.Grants[i] = grant.Grant{
			ID:          i + 1,
			ProjectName: m.projectName(p),
			Years:       append([]string(nil), p.years...),
			Amount:      p.amount,
			Description: p.description,
			FocusArea:   p.focusArea,
			Status:      p.status,
		}
	}
	out.HasMultipleGrants = true
	out.GrantCount = len(parts)

	return out, nil
}

func (m *Merger) description(parts []part, total grant.Amount) string {
	switch m.policy.Description {
	case DescriptionSummary:
		return Summary(len(parts), total)
	case DescriptionSummaryIfQualified:
		if distinctNames(parts) > 1 {
			return Summary(len(parts), total)
		}
	}
	return longestDescription(parts)
}

func (m *Merger) projectName(p part) string {
	if p.expanded {
		return p.projectName
	}
	switch m.policy.ProjectNames {
	case ProjectFromQualifier:
		if _, project, found := normalize.SplitQualifier(p.fullName); found && project != "" {
			return project
		}
		return FallbackProjectName
	case ProjectFromFocusArea:
		if p.focusArea != "" {
			return p.focusArea
		}
		return FallbackProjectName
	default:
		return ""
	}
}

// Summary is the generated description of a multi-grant organization.
func Summary(count int, total grant.Amount) string {
	return fmt.Sprintf("This organization received %d grants totaling %s.", count, total)
}

func unionYears(parts []part) []string {
	seen := make(map[string]struct{})
	years := []string{}
	for _, p := range parts {
		for _, y := range p.years {
			if _, ok := seen[y]; ok {
				continue
			}
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	sort.Strings(years)
	return years
}

func longestDescription(parts []part) string {
	longest := parts[0].description
	for _, p := range parts[1:] {
		if len([]rune(p.description)) > len([]rune(longest)) {
			longest = p.description
		}
	}
	return longest
}

func distinctFocusAreas(parts []part) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range parts {
		area := strings.TrimSpace(p.focusArea)
		if area == "" {
			continue
		}
		if _, ok := seen[area]; ok {
			continue
		}
		seen[area] = struct{}{}
		out = append(out, area)
	}
	return out
}

func distinctNames(parts []part) int {
	fold := normalize.CaseInsensitive{}
	seen := make(map[string]struct{})
	for _, p := range parts {
		seen[fold.Key(p.fullName)] = struct{}{}
	}
	return len(seen)
}

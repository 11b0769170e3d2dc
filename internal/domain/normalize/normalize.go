// Package normalize maps organization names to grouping keys and canonical
// display names. Each rule defines one equivalence over names; a consolidation
// pass uses exactly one rule.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Rule names a normalization rule.
type Rule string

const (
	RuleExact           Rule = "exact"
	RuleCaseInsensitive Rule = "case-insensitive"
	RuleSuffix          Rule = "suffix"
	RuleQualifier       Rule = "qualifier"
)

// ErrUnknownRule indicates a rule name that has no normalizer.
var ErrUnknownRule = errors.New("unknown normalization rule")

// Normalizer produces the grouping key and canonical name for a raw name.
type Normalizer interface {
	Rule() Rule
	Key(name string) string
	Canonical(name string) string
}

// ForRule returns the normalizer for a configured rule name.
func ForRule(rule string) (Normalizer, error) {
	switch Rule(strings.ToLower(strings.TrimSpace(rule))) {
	case RuleExact:
		return Exact{}, nil
	case RuleCaseInsensitive, "case", "caseinsensitive":
		return CaseInsensitive{}, nil
	case RuleSuffix:
		return Suffix{}, nil
	case RuleQualifier, "base-name":
		return Qualifier{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}
}

// Rules lists every supported rule.
func Rules() []Rule {
	return []Rule{RuleExact, RuleCaseInsensitive, RuleSuffix, RuleQualifier}
}

// Exact groups names that are identical after trimming.
type Exact struct{}

func (Exact) Rule() Rule                   { return RuleExact }
func (Exact) Key(name string) string       { return strings.TrimSpace(name) }
func (Exact) Canonical(name string) string { return name }

// CaseInsensitive groups names that differ only in case or spacing.
type CaseInsensitive struct{}

func (CaseInsensitive) Rule() Rule                   { return RuleCaseInsensitive }
func (CaseInsensitive) Key(name string) string       { return foldKey(name) }
func (CaseInsensitive) Canonical(name string) string { return name }

var corporateSuffix = regexp.MustCompile(
	`(?i)[\s,]*\b(inc|llc|incorporated|limited liability company|company|corp|corporation)\b\.?[\s.,]*$`)

// Suffix groups names that differ by a trailing corporate suffix such as
// "Inc." or "LLC", in addition to case and spacing.
type Suffix struct{}

func (Suffix) Rule() Rule { return RuleSuffix }

func (Suffix) Key(name string) string {
	return foldKey(StripSuffix(name))
}

func (Suffix) Canonical(name string) string {
	return StripSuffix(name)
}

// StripSuffix removes one trailing corporate suffix, keeping the original case.
// A name that is nothing but a suffix is returned trimmed and unchanged.
func StripSuffix(name string) string {
	trimmed := strings.TrimSpace(name)
	stripped := strings.TrimSpace(corporateSuffix.ReplaceAllString(trimmed, ""))
	if stripped == "" {
		return trimmed
	}
	return stripped
}

// Qualifier groups names by the base organization name before the first ':'
// or '|', so "Center X: Project A" and "Center X | Project B" share a group.
type Qualifier struct{}

func (Qualifier) Rule() Rule { return RuleQualifier }

func (Qualifier) Key(name string) string {
	base, _, _ := SplitQualifier(name)
	return foldKey(base)
}

func (Qualifier) Canonical(name string) string {
	base, _, _ := SplitQualifier(name)
	return base
}

// SplitQualifier splits a name at the first ':' or '|'. The base and project
// parts are trimmed; found is false when the name has no delimiter.
func SplitQualifier(name string) (base, project string, found bool) {
	i := strings.IndexAny(name, ":|")
	if i < 0 {
		return strings.TrimSpace(name), "", false
	}
	return strings.TrimSpace(name[:i]), strings.TrimSpace(name[i+1:]), true
}

// foldKey lower-cases and collapses whitespace after NFKC normalization.
func foldKey(s string) string {
	s = norm.NFKC.String(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

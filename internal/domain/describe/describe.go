// Package describe normalizes grant descriptions into one house style:
// "Received funding to <activity>".
package describe

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Prefix opens every cleaned description.
const Prefix = "Received funding to "

// boilerplate lists leading phrases removed before the prefix is applied,
// longest first.
var boilerplate = []string{
	Prefix,
	"to fund a project to ",
	"to fund ",
	"fund ",
	"to ",
}

// properNouns keep their capital when they open a description.
var properNouns = map[string]struct{}{
	"Blue":       {},
	"Black":      {},
	"New":        {},
	"Jersey":     {},
	"Atlantic":   {},
	"Burlington": {},
}

// Clean rewrites desc into house style. Leading boilerplate, including a
// prefix left by an earlier pass, is removed until none remains, so
// Clean(Clean(s)) == Clean(s). Blank input returns "".
func Clean(desc string) string {
	body := Strip(desc)
	if body == "" {
		return ""
	}
	return Prefix + lowerFirst(body)
}

// Strip removes leading boilerplate without adding the prefix.
func Strip(desc string) string {
	body := strings.TrimSpace(desc)
	for {
		stripped := false
		for _, phrase := range boilerplate {
			if hasPrefixFold(body, phrase) {
				body = strings.TrimSpace(body[len(phrase):])
				stripped = true
				break
			}
		}
		if !stripped {
			return body
		}
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func lowerFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return s
	}
	word, _, _ := strings.Cut(s, " ")
	if _, ok := properNouns[word]; ok {
		return s
	}
	return string(unicode.ToLower(first)) + s[size:]
}

package sqlite

import "strings"

// isFTSSyntaxError reports whether err is an FTS5 query parse failure.
func isFTSSyntaxError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "fts5: syntax error") || strings.Contains(msg, "unterminated string")
}

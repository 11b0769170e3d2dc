// Package migrations holds the SQL schema applied at startup.
package migrations

import "embed"

// FS contains the numbered .up.sql files, applied in name order.
//
//go:embed *.sql
var FS embed.FS

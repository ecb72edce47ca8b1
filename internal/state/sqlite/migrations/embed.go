// Package migrations contains the embedded schema of the sqlite state store.
package migrations

import "embed"

// FS contains the migration files applied in name order.
//
//go:embed *.sql
var FS embed.FS

package migrations

import "embed"

// FS contains embedded SQLite migrations for entitlement storage.
//
//go:embed *.sql
var FS embed.FS

package migrations

import "embed"

// FS contains embedded SQLite migrations for seminar storage.
//
//go:embed *.sql
var FS embed.FS

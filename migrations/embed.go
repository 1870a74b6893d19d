package migrations

import "embed"

// FS holds the versioned PostgreSQL schema migrations.
//
//go:embed *.sql
var FS embed.FS

// Package migrations embeds the SQL schema for every supported store.
package migrations

import "embed"

// FS holds one directory of goose migrations per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Dir names inside FS.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)

// Package migrations embeds the SQL schema for both SQLite stores.
package migrations

import "embed"

// FS holds the schema files.
//
//go:embed *.sql
var FS embed.FS

// Schema files, one per store.
const (
	Stats   = "001_stats.up.sql"
	Content = "001_content.up.sql"
)

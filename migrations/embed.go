// Package migrations embeds the schema migrations applied by cmd/migrate.
package migrations

import "embed"

// FS holds the golang-migrate .up.sql and .down.sql pairs
//
//go:embed *.sql
var FS embed.FS

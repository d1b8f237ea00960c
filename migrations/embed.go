// Package migrations embeds the goose SQL migrations for every supported
// database. Each dialect lives in its own directory.
package migrations

import "embed"

// FS holds postgres/*.sql, sqlite/*.sql and mysql/*.sql.
//
//go:embed postgres/*.sql sqlite/*.sql mysql/*.sql
var FS embed.FS

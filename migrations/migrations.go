// Package migrations embeds the schema migrations for each supported driver.
package migrations

import "embed"

// FS holds one directory of NNN_name.sql files per driver: sqlite/ and postgres/.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

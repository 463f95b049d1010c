// Package migrations embeds the SQL migrations so the binaries carry their own
// schema and do not depend on the working directory.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

// PostgresDir is the directory inside Postgres holding the migration files.
const PostgresDir = "postgres"

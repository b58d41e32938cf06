// Package migrations compiles the schema migration files into the
// binary, so pdusim needs no SQL files on disk at runtime.
package migrations

import (
	"embed"

	"github.com/nerrad567/pdusim/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // files sit at the root of the embedded FS
}

package triggers

import (
	"context"
	"embed"

	"github.com/goliatone/go-triggers/internal/sourceconfig"
	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// EnsureSchema creates the trigger_sources table when it does not exist yet.
// Hosts running a migration framework should prefer the embedded SQL files.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*sourceconfig.Source)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

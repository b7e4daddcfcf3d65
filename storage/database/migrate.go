package database

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/autolearn/core"
)

//go:embed migrations
var migrationsFS embed.FS

// PrepareMigrations points goose at the embedded migrations of engine and returns their directory.
func PrepareMigrations(engine string) (string, error) {
	var dialect, dir string
	switch engine {
	case core.EnginePostgres:
		dialect, dir = "postgres", "migrations/postgres"
	case core.EngineSQLite, "":
		dialect, dir = "sqlite3", "migrations/sqlite"
	default:
		return "", errors.Errorf("unsupported database engine %q", engine)
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return "", errors.Wrap(err, "setting goose dialect")
	}
	return dir, nil
}

func Migrate(ctx context.Context, db *sql.DB, engine string) error {
	dir, err := PrepareMigrations(engine)
	if err != nil {
		return err
	}
	if err = goose.UpContext(ctx, db, dir); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

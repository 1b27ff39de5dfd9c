package db

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

var dialects = map[string]database.Dialect{
	"sqlite": database.DialectSQLite3,
	"pgx":    database.DialectPostgres,
}

// newProvider builds a goose provider over the embedded migrations. Unlike
// the package-level goose API it keeps no global state and prints nothing.
func newProvider(db *sqlx.DB, driver string) (*goose.Provider, error) {
	dialect, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported journal driver %q", driver)
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to get migrations directory: %w", err)
	}

	return goose.NewProvider(dialect, db.DB, migrations)
}

func migrateUp(ctx context.Context, db *sqlx.DB, driver string) error {
	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		slog.Debug("journal migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

func migrateReset(ctx context.Context, db *sqlx.DB, driver string) error {
	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	results, err := provider.DownTo(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	slog.Debug("journal migrations rolled back", "count", len(results))
	return nil
}

package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Journal is the event database. It is opened and migrated on first use,
// so commands that never record or read events leave no database behind
// and keep working when it cannot be opened.
type Journal struct {
	driver     string
	connection string

	once sync.Once
	db   *sqlx.DB
	err  error
}

// NewJournal prepares a journal for driver "sqlite" or "pgx" without
// connecting.
func NewJournal(driver, connection string) *Journal {
	return &Journal{driver: driver, connection: connection}
}

// Conn returns the migrated database. An open failure is remembered and
// returned on every later call.
func (j *Journal) Conn() (*sqlx.DB, error) {
	j.once.Do(func() {
		database, err := open(j.driver, j.connection)
		if err != nil {
			j.err = fmt.Errorf("failed to open journal: %w", err)
			return
		}

		err = migrateUp(context.Background(), database, j.driver)
		if err != nil {
			database.Close()
			j.err = err
			return
		}

		j.db = database
	})
	return j.db, j.err
}

// Reset rolls every migration back and applies them again, leaving an
// empty journal.
func (j *Journal) Reset(ctx context.Context) error {
	database, err := j.Conn()
	if err != nil {
		return err
	}

	err = migrateReset(ctx, database, j.driver)
	if err != nil {
		return err
	}
	return migrateUp(ctx, database, j.driver)
}

// Close releases the connection if the journal was ever opened.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func open(driver, connection string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		path, _, _ := strings.Cut(strings.TrimPrefix(connection, "file:"), "?")
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	database, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// One CLI process writes serially.
	database.SetMaxOpenConns(1)

	slog.Debug("journal opened", "driver", driver)
	return database, nil
}

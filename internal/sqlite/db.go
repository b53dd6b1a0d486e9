package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New opens the database at dataSourceName and applies the schema.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps ":memory:" databases shared and serializes writes.
	db.SetMaxOpenConns(1)

	wrapped := &DB{db}
	if err := wrapped.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return wrapped, nil
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate() error {
	migration := `
CREATE TABLE IF NOT EXISTS contribution_settings (
    id INTEGER PRIMARY KEY,
    contribution_type TEXT NOT NULL CHECK(contribution_type IN ('percent', 'dollar')),
    contribution_value REAL NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS contribution_changes (
    id TEXT PRIMARY KEY,
    changed_at TIMESTAMP NOT NULL,
    contribution_type TEXT NOT NULL,
    contribution_value REAL NOT NULL,
    forward_patch TEXT NOT NULL,
    backward_patch TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_changes_changed_at ON contribution_changes(changed_at);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

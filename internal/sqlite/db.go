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

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection sees its own in-memory database and pragmas.
	if dataSourceName == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the run export schema. It is safe to run on an
// existing export file.
func (db *DB) RunMigrations() error {
	migration := `
-- One row per conversion run
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TIMESTAMP NOT NULL,
    source_path TEXT NOT NULL,
    accepted_columns TEXT NOT NULL,
    accepted_count INTEGER NOT NULL,
    rejected_count INTEGER NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Accepted rows in import format
CREATE TABLE IF NOT EXISTS accepted (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    leaid TEXT,
    ident_nr TEXT,
    nachname TEXT,
    vorname TEXT,
    typ TEXT,
    seminar TEXT,
    lehramt TEXT,
    jahrgang TEXT,
    kernseminar TEXT,
    fachseminar_1 TEXT,
    fachseminar_2 TEXT,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(id)
);

-- Rejected rows for triage
CREATE TABLE IF NOT EXISTS rejected (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    leaid TEXT,
    ident_nr TEXT,
    nachname TEXT,
    vorname TEXT,
    typ TEXT,
    lehramt TEXT,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_rejected_lehramt ON rejected(lehramt);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

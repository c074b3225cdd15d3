package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DB wraps the sql handle together with the driver it was opened with, so
// stores can write one query dialect and rebind it per backend.
type DB struct {
	*sql.DB
	driver string
}

// New opens a database handle for the given driver: "sqlite" (local
// single-file storage, the default) or "postgres".
func New(driver, source string) (*DB, error) {
	switch driver {
	case "sqlite":
		return newSQLite(source)
	case "postgres":
		return newPostgres(source)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func newSQLite(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// WAL keeps readers unblocked during a write; busy_timeout covers the
	// rare overlap of two connections from the same process.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{DB: db, driver: "sqlite"}, nil
}

func newPostgres(dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{DB: db, driver: "postgres"}, nil
}

// Rebind converts ?-style placeholders to the $N style postgres expects.
// Queries never carry a literal question mark, so a plain scan is enough.
func (db *DB) Rebind(query string) string {
	if db.driver != "postgres" {
		return query
	}

	var b strings.Builder

	n := 0

	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}

		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}

	return b.String()
}

// Schema is written to the SQL subset both backends accept: TEXT ids, ISO
// dates and decimal amounts as TEXT (string sort order matches date order).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		snapshot_date TEXT NOT NULL,
		category TEXT NOT NULL,
		label TEXT NOT NULL,
		amount TEXT NOT NULL,
		currency TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_snapshot_date ON entries (snapshot_date)`,
	`CREATE TABLE IF NOT EXISTS exchange_rates (
		base_currency TEXT NOT NULL,
		quote_currency TEXT NOT NULL,
		rate_date TEXT NOT NULL,
		rate TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (base_currency, quote_currency, rate_date)
	)`,
	`CREATE TABLE IF NOT EXISTS label_mappings (
		raw_pattern TEXT NOT NULL,
		preferred_label TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
}

// Migrate creates the schema if it does not exist yet. Opening a fresh
// storage location is all it takes to get a working instance.
func (db *DB) Migrate() error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}

	return nil
}

// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required); one connection per store.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harperreed/fitness/internal/auth"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DB is the session-scoped store. It owns the SQLite connection and the single
// live Session; every ledger operation is gated on that session.
type DB struct {
	db      *sql.DB
	dbPath  string
	log     zerolog.Logger
	session auth.Session
	now     func() time.Time
}

// Open opens or creates a SQLite database at the given path. Use MemoryPath
// for a throwaway store.
func Open(dbPath string, log zerolog.Logger) (*DB, error) {
	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", unavailable(err))
	}

	// A single connection serializes every call and keeps :memory: alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect database: %w", unavailable(err))
	}

	if dbPath != MemoryPath {
		if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
			_ = db.Close()
			return nil, fmt.Errorf("set database permissions: %w", err)
		}
	}

	d := &DB{
		db:     db,
		dbPath: dbPath,
		log:    log.With().Str("component", "store").Logger(),
		now:    time.Now,
	}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", translate(err))
	}

	d.log.Info().Str("path", dbPath).Msg("store opened")
	return d, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitness")
}

// DefaultDBPath returns the default database path following XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "fitness.db")
}

// Path returns the path the store was opened with.
func (d *DB) Path() string {
	return d.dbPath
}

// Close ends the session and closes the database connection.
func (d *DB) Close() error {
	d.session.End()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// dsn adds per-connection pragmas so a reopened connection keeps foreign keys on.
func dsn(dbPath string) string {
	return dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}

// configurePragmas sets journaling for file databases.
func (d *DB) configurePragmas() error {
	if d.dbPath == MemoryPath {
		return nil
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, translate(err))
		}
	}
	return nil
}

func (d *DB) timestamp() string {
	return d.now().UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

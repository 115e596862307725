// ABOUTME: Shared helpers for storage tests.
// ABOUTME: Opens temp-dir databases, logs in test users, and steps a fake clock.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "fitness-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "fitness.db")
	db, err := Open(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Each call to the clock advances one second so created_at is strictly
	// increasing across saves.
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	var step int
	db.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	return db
}

// loginTestUser registers username with a fixed password and logs in.
func loginTestUser(t *testing.T, db *DB, username string) int64 {
	t.Helper()
	ctx := context.Background()

	id, err := db.Register(ctx, username, "secret-"+username)
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", username, err)
	}
	if _, err := db.Login(ctx, username, "secret-"+username); err != nil {
		t.Fatalf("Login(%q) failed: %v", username, err)
	}
	return id
}

func countRows(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

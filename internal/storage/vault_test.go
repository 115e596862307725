// ABOUTME: Tests for registration, verification, login and logout.
// ABOUTME: Covers duplicate usernames, wrong passwords, and session replacement.
package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harperreed/fitness/internal/models"
)

func TestRegisterAndVerify(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, err := db.Register(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive id, got %d", id)
	}

	got, err := db.Verify(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got != id {
		t.Errorf("Verify returned id %d, want %d", got, id)
	}
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var hash string
	if err := db.db.QueryRow(`SELECT password_hash FROM users WHERE username = 'alice'`).Scan(&hash); err != nil {
		t.Fatalf("select hash: %v", err)
	}
	if hash == "pw1" || !strings.HasPrefix(hash, "$pbkdf2-sha256$") {
		t.Errorf("unexpected stored hash %q", hash)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err := db.Register(ctx, "alice", "pw2")
	if !errors.Is(err, models.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	if n := countRows(t, db, "users"); n != 1 {
		t.Errorf("expected 1 user row, got %d", n)
	}
	// The first password still works.
	if _, err := db.Verify(ctx, "alice", "pw1"); err != nil {
		t.Errorf("Verify with original password failed: %v", err)
	}
}

func TestRegisterEmptyCredentials(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw"},
		{"empty password", "alice", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Register(ctx, tt.username, tt.password)
			if !errors.Is(err, models.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
	if n := countRows(t, db, "users"); n != 0 {
		t.Errorf("expected no users, got %d", n)
	}
}

func TestVerifyFailures(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := db.Verify(ctx, "bob", "pw1"); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("unknown user: expected ErrUserNotFound, got %v", err)
	}
	if _, err := db.Verify(ctx, "alice", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginLogout(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, ok := db.CurrentUser(); ok {
		t.Fatal("new store should have no session")
	}

	id := loginTestUser(t, db, "alice")
	who, ok := db.CurrentUser()
	if !ok || who.UserID != id || who.Username != "alice" {
		t.Fatalf("CurrentUser = %+v, %v; want alice/%d", who, ok, id)
	}

	db.Logout()
	if _, ok := db.CurrentUser(); ok {
		t.Error("session should be empty after logout")
	}

	// Logout with no session is a no-op.
	db.Logout()
	if _, ok := db.CurrentUser(); ok {
		t.Error("second logout should leave the session empty")
	}

	if _, err := db.Login(ctx, "alice", "secret-alice"); err != nil {
		t.Fatalf("re-login failed: %v", err)
	}
}

func TestLoginReplacesSession(t *testing.T) {
	db := setupTestDB(t)

	loginTestUser(t, db, "alice")
	bobID := loginTestUser(t, db, "bob")

	who, ok := db.CurrentUser()
	if !ok || who.UserID != bobID {
		t.Fatalf("expected bob to hold the session, got %+v", who)
	}
}

func TestFailedLoginKeepsSession(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	aliceID := loginTestUser(t, db, "alice")
	if _, err := db.Register(ctx, "bob", "pw"); err != nil {
		t.Fatalf("Register bob failed: %v", err)
	}

	if _, err := db.Login(ctx, "bob", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	who, ok := db.CurrentUser()
	if !ok || who.UserID != aliceID {
		t.Errorf("failed login changed the session: %+v, %v", who, ok)
	}
}

// ABOUTME: Credential vault: registration, verification, login and logout.
// ABOUTME: Duplicate usernames are caught by the UNIQUE constraint, not a pre-check.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/auth"
	"github.com/harperreed/fitness/internal/models"
)

// Register creates a user and returns its id.
func (d *DB) Register(ctx context.Context, username, password string) (int64, error) {
	d.log.Info().Str("username", username).Msg("registration attempt")
	if username == "" || password == "" {
		return 0, fmt.Errorf("register: %w: username and password are required", models.ErrInvalidCredentials)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("register: %w", err)
	}

	var id int64
	err = d.withTx(ctx, "register", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
			username, hash, d.timestamp())
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", models.ErrDuplicateUsername, username)
			}
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			d.log.Warn().Str("username", username).Msg("registration failed: username exists")
		}
		return 0, err
	}

	d.log.Info().Str("username", username).Int64("user_id", id).Msg("user registered")
	return id, nil
}

// Verify checks username and password and returns the user's id.
func (d *DB) Verify(ctx context.Context, username, password string) (int64, error) {
	var (
		id   int64
		hash string
	)
	err := d.withTx(ctx, "verify", func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT id, password_hash FROM users WHERE username = ?`, username).Scan(&id, &hash)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", models.ErrUserNotFound, username)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			d.log.Warn().Str("username", username).Msg("login failed: user not found")
		}
		return 0, err
	}

	ok, err := auth.VerifyPassword(password, hash)
	if err != nil {
		return 0, fmt.Errorf("verify: %w: %v", models.ErrIntegrityViolation, err)
	}
	if !ok {
		d.log.Warn().Str("username", username).Msg("login failed: invalid password")
		return 0, fmt.Errorf("verify: %w", models.ErrInvalidCredentials)
	}
	return id, nil
}

// Login verifies the credentials and makes the user the current session,
// replacing any previous one. A failed login leaves the session unchanged.
func (d *DB) Login(ctx context.Context, username, password string) (auth.Identity, error) {
	d.log.Info().Str("username", username).Msg("login attempt")
	id, err := d.Verify(ctx, username, password)
	if err != nil {
		return auth.Identity{}, err
	}

	identity := auth.Identity{UserID: id, Username: username}
	if prev, replaced := d.session.Authenticate(identity); replaced {
		d.log.Info().Str("previous", prev.Username).Msg("session replaced")
	}
	d.log.Info().Str("username", username).Msg("user logged in")
	return identity, nil
}

// Logout ends the session. Calling it with no session is a logged no-op.
func (d *DB) Logout() {
	prev, ok := d.session.End()
	if !ok {
		d.log.Warn().Msg("logout attempted with no active session")
		return
	}
	d.log.Info().Str("username", prev.Username).Msg("user logged out")
}

// CurrentUser returns the live identity, if any.
func (d *DB) CurrentUser() (auth.Identity, bool) {
	return d.session.Current()
}

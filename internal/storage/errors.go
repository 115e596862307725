// ABOUTME: Translation of SQLite driver errors into the models error taxonomy.
// ABOUTME: Raw driver errors are wrapped, never returned bare.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/fitness/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// translate classifies driver errors. A UNIQUE violation becomes
// ErrIntegrityViolation here; callers that know which column is unique
// (registration) narrow it. Errors that did not come from the driver or
// database/sql are returned unchanged. The cause stays in the chain.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
	}

	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}

	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %w", models.ErrIntegrityViolation, err)
	}
	// BUSY, LOCKED, IOERR, CANTOPEN, FULL, READONLY and the rest.
	return fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
}

// unavailable classifies a failure to reach the database at all (open, begin,
// commit). Anything translate leaves unclassified is ErrStorageUnavailable.
func unavailable(err error) error {
	err = translate(err)
	if err == nil || isDomainError(err) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	// Without extended codes only the message tells them apart.
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(se.Error(), "UNIQUE constraint failed")
}

func isDomainError(err error) bool {
	for _, target := range []error{
		models.ErrDuplicateUsername,
		models.ErrUserNotFound,
		models.ErrInvalidCredentials,
		models.ErrUnauthenticated,
		models.ErrNotFound,
		models.ErrIntegrityViolation,
		models.ErrStorageUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

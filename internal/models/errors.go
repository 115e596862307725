// ABOUTME: Sentinel errors shared by the store, catalog, and callers.
// ABOUTME: Storage failures are translated to these before leaving the storage package.
package models

import "errors"

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not logged in")
	ErrNotFound           = errors.New("not found")
	ErrIntegrityViolation = errors.New("integrity violation")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

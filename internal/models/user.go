// ABOUTME: User account model.
// ABOUTME: Users are created by registration and never modified afterwards.
package models

import "time"

// User is a registered account. PasswordHash holds the encoded PBKDF2 hash.
type User struct {
	ID           int64     `json:"id" yaml:"id"`
	Username     string    `json:"username" yaml:"username"`
	PasswordHash string    `json:"-" yaml:"-"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

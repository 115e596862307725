// ABOUTME: PBKDF2-SHA256 password hashing in passlib's modular crypt format.
// ABOUTME: Hashes look like $pbkdf2-sha256$29000$<salt>$<checksum>.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultRounds matches passlib's pbkdf2_sha256 default so existing
	// databases keep verifying.
	DefaultRounds = 29000

	saltSize = 16
	keySize  = 32
	scheme   = "pbkdf2-sha256"
)

// ErrMalformedHash is returned when a stored hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// ab64 is passlib's "adapted base64": standard alphabet with '.' for '+', no padding.
var ab64 = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789./").WithPadding(base64.NoPadding)

// HashPassword derives a salted hash of password with DefaultRounds.
func HashPassword(password string) (string, error) {
	return HashPasswordRounds(password, DefaultRounds)
}

// HashPasswordRounds derives a salted hash with an explicit iteration count.
func HashPasswordRounds(password string, rounds int) (string, error) {
	if rounds < 1 {
		return "", fmt.Errorf("rounds must be positive, got %d", rounds)
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, rounds, keySize, sha256.New)
	return encode(rounds, salt, key), nil
}

// VerifyPassword reports whether password matches encoded.
func VerifyPassword(password, encoded string) (bool, error) {
	rounds, salt, want, err := decode(encoded)
	if err != nil {
		return false, err
	}
	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func encode(rounds int, salt, key []byte) string {
	return fmt.Sprintf("$%s$%d$%s$%s", scheme, rounds, ab64.EncodeToString(salt), ab64.EncodeToString(key))
}

func decode(encoded string) (int, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	// "", scheme, rounds, salt, checksum
	if len(parts) != 5 || parts[0] != "" || parts[1] != scheme {
		return 0, nil, nil, ErrMalformedHash
	}
	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds < 1 {
		return 0, nil, nil, fmt.Errorf("%w: bad rounds %q", ErrMalformedHash, parts[2])
	}
	salt, err := ab64.DecodeString(parts[3])
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := ab64.DecodeString(parts[4])
	if err != nil || len(key) == 0 {
		return 0, nil, nil, fmt.Errorf("%w: checksum", ErrMalformedHash)
	}
	return rounds, salt, key, nil
}

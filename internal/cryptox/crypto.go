// Package cryptox holds the password hashing used by the local account store.
//
// Hashes are the lowercase hex SHA-256 digest of the UTF-8 password, without
// salt or stretching. Existing databases store this format, so changing it
// requires a migration of the users table.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the 64-char lowercase hex SHA-256 of password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether password hashes to hash.
func VerifyPassword(password, hash string) bool {
	got := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1
}

// Package crypto provides password hashing and verification for stored
// credentials. Plaintext passwords never leave this boundary.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a salted bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash verifies the given password against a stored bcrypt
// hash. The comparison is constant time.
func CheckPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

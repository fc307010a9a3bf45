// ABOUTME: Administrator credential verification against the provisioned bcrypt digest
// ABOUTME: Constant-time comparison with a dummy hash to avoid username enumeration

package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username does not match, so a
// login attempt costs the same bcrypt work regardless of which credential
// was wrong.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Credentials holds the single provisioned administrator identity. The
// identity is static: it is configured at deployment time and never
// created or deleted at runtime.
type Credentials struct {
	Username     string
	PasswordHash string // bcrypt digest
}

// Verify checks a presented username/password pair. It returns a single
// boolean with no distinction between an unknown username and a wrong
// password. The cleartext password is never logged or stored.
func (c Credentials) Verify(username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	hash := c.PasswordHash
	if !usernameMatch || hash == "" {
		hash = dummyHash
	}

	passwordMatch := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil

	return usernameMatch && passwordMatch
}

// HashPassword produces a bcrypt digest suitable for provisioning the
// administrator in configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

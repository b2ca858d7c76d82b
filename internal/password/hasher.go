package password

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "dashdeck/internal/errors"
)

// bcryptCost is fixed; changing it only affects newly written hashes.
const bcryptCost = 10

// bcrypt hashes start with a version marker. $2b$ is what current
// implementations emit; $2a$ and $2y$ appear in rows written by older ones.
var hashPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// Hasher wraps bcrypt hashing and verification.
type Hasher struct{}

// NewHasher creates a bcrypt-backed hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash generates a salted hash of plaintext. Each call draws a fresh salt,
// so two hashes of the same input differ.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A wrong password is
// (false, nil); only a structurally invalid hash is an error.
func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", apperrors.ErrMalformedHash, err)
}

// LooksHashed reports whether value carries a bcrypt version prefix. This is
// a structural heuristic used to tell hashed values from legacy plaintext,
// not a cryptographic check.
func (h *Hasher) LooksHashed(value string) bool {
	for _, prefix := range hashPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

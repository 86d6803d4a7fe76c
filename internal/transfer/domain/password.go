package domain

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidHash      = errors.New("invalid password hash")
)

// Password holds a bcrypt hash. Plaintext never leaves the constructor.
type Password struct {
	hash string
}

// NewPassword hashes a plaintext password.
func NewPassword(plaintext string) (Password, error) {
	if len(plaintext) < 8 {
		return Password{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return Password{}, fmt.Errorf("hashing password: %w", err)
	}

	return Password{hash: string(hash)}, nil
}

// PasswordFromHash wraps an existing bcrypt hash, for hydration from storage.
func PasswordFromHash(hash string) (Password, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return Password{}, ErrInvalidHash
	}
	return Password{hash: hash}, nil
}

// Verify checks a plaintext password against the hash.
func (p Password) Verify(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(plaintext)) == nil
}

// Hash returns the stored hash.
func (p Password) Hash() string {
	return p.hash
}

package domain

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email address")

// Email is a validated, lowercased email address.
type Email struct {
	address string
}

// NewEmail validates and normalizes an email address.
func NewEmail(address string) (Email, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return Email{}, ErrInvalidEmail
	}

	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return Email{}, ErrInvalidEmail
	}

	return Email{address: address}, nil
}

// String returns the normalized address.
func (e Email) String() string {
	return e.address
}

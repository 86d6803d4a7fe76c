// Package domain holds the wallet transfer domain model: users, wallets,
// identity documents and the transfer state machine.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyUserID     = errors.New("user id must not be empty")
	ErrEmptyWalletID   = errors.New("wallet id must not be empty")
	ErrInvalidTransfer = errors.New("invalid transfer id")
)

// UserID identifies a user.
type UserID struct {
	value string
}

// NewUserID validates and creates a UserID.
func NewUserID(value string) (UserID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return UserID{}, ErrEmptyUserID
	}
	return UserID{value: value}, nil
}

// String returns the raw identifier.
func (id UserID) String() string {
	return id.value
}

// Equal checks identifier equality.
func (id UserID) Equal(other UserID) bool {
	return id.value == other.value
}

// IsZero reports whether the identifier is unset.
func (id UserID) IsZero() bool {
	return id.value == ""
}

// WalletID identifies a wallet.
type WalletID struct {
	value string
}

// NewWalletID validates and creates a WalletID.
func NewWalletID(value string) (WalletID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return WalletID{}, ErrEmptyWalletID
	}
	return WalletID{value: value}, nil
}

// String returns the raw identifier.
func (id WalletID) String() string {
	return id.value
}

// TransferID identifies a transfer. Transfer identifiers are UUIDs minted
// at creation time.
type TransferID struct {
	value uuid.UUID
}

// NewTransferID mints a fresh transfer identifier.
func NewTransferID() TransferID {
	return TransferID{value: uuid.New()}
}

// ParseTransferID parses a transfer identifier from its string form.
func ParseTransferID(value string) (TransferID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return TransferID{}, fmt.Errorf("%w: %q", ErrInvalidTransfer, value)
	}
	return TransferID{value: id}, nil
}

// String returns the canonical UUID string.
func (id TransferID) String() string {
	return id.value.String()
}

// Equal checks identifier equality.
func (id TransferID) Equal(other TransferID) bool {
	return id.value == other.value
}

// IsZero reports whether the identifier is unset.
func (id TransferID) IsZero() bool {
	return id.value == uuid.Nil
}

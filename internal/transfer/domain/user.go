package domain

import (
	"errors"
	"fmt"
	"strings"

	"walletpay/internal/common/money"
)

var (
	ErrInvalidUserName     = errors.New("user name must be between 3 and 255 characters")
	ErrInvalidUserType     = errors.New("invalid user type")
	ErrUserCannotSendMoney = errors.New("user type cannot send money")
	ErrInsufficientFunds   = errors.New("insufficient funds")
)

// UserType determines what a user may do. Merchants can only receive.
type UserType string

const (
	UserTypeOrdinary UserType = "ordinary-user"
	UserTypeMerchant UserType = "merchant"
)

// ParseUserType validates a user type string.
func ParseUserType(value string) (UserType, error) {
	switch UserType(value) {
	case UserTypeOrdinary:
		return UserTypeOrdinary, nil
	case UserTypeMerchant:
		return UserTypeMerchant, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUserType, value)
	}
}

// CanSend reports whether this user type may initiate transfers. Unknown
// types cannot send.
func (t UserType) CanSend() bool {
	switch t {
	case UserTypeOrdinary:
		return true
	case UserTypeMerchant:
		return false
	default:
		return false
	}
}

// User is an account holder with a wallet. Users are immutable: debits and
// credits return a new User.
type User struct {
	id       UserID
	name     string
	email    Email
	document Document
	password Password
	userType UserType
	wallet   Wallet
}

// NewUser validates and creates a user.
func NewUser(id UserID, name string, email Email, document Document, password Password, userType UserType, wallet Wallet) (User, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 || len(name) > 255 {
		return User{}, ErrInvalidUserName
	}
	if _, err := ParseUserType(string(userType)); err != nil {
		return User{}, err
	}

	return User{
		id:       id,
		name:     name,
		email:    email,
		document: document,
		password: password,
		userType: userType,
		wallet:   wallet,
	}, nil
}

// ID returns the user identifier.
func (u User) ID() UserID { return u.id }

// Name returns the user's full name.
func (u User) Name() string { return u.name }

// Email returns the user's email.
func (u User) Email() Email { return u.email }

// Document returns the user's registration document.
func (u User) Document() Document { return u.document }

// Password returns the user's hashed password.
func (u User) Password() Password { return u.password }

// Type returns the user type.
func (u User) Type() UserType { return u.userType }

// Wallet returns the user's wallet.
func (u User) Wallet() Wallet { return u.wallet }

// Balance returns the wallet balance.
func (u User) Balance() money.Money { return u.wallet.Balance() }

// CanSendMoney reports whether the user may initiate transfers.
func (u User) CanSendMoney() bool {
	return u.userType.CanSend()
}

// HasSufficientBalance reports whether the wallet covers the amount.
func (u User) HasSufficientBalance(amount money.Money) bool {
	return u.wallet.HasBalance(amount)
}

// DebitWallet returns a copy of the user with the amount debited. It fails
// if the user cannot send money or the balance does not cover the amount.
func (u User) DebitWallet(amount money.Money) (User, error) {
	if !u.CanSendMoney() {
		return User{}, ErrUserCannotSendMoney
	}
	if !u.HasSufficientBalance(amount) {
		return User{}, ErrInsufficientFunds
	}

	wallet, err := u.wallet.WithDeductedBalance(amount)
	if err != nil {
		return User{}, err
	}

	debited := u
	debited.wallet = wallet
	return debited, nil
}

// CreditWallet returns a copy of the user with the amount credited.
func (u User) CreditWallet(amount money.Money) User {
	credited := u
	credited.wallet = u.wallet.WithAddedBalance(amount)
	return credited
}

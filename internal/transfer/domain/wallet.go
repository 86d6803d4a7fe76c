package domain

import (
	"errors"

	"walletpay/internal/common/money"
)

var ErrNegativeWalletBalance = errors.New("wallet balance cannot go negative")

// Wallet holds a user's balance. Wallets are immutable: debits and credits
// return a new Wallet, leaving the receiver untouched.
type Wallet struct {
	id      WalletID
	balance money.Money
}

// NewWallet creates a wallet with the given opening balance.
func NewWallet(id WalletID, balance money.Money) (Wallet, error) {
	if balance.IsNegative() {
		return Wallet{}, ErrNegativeWalletBalance
	}
	return Wallet{id: id, balance: balance}, nil
}

// ID returns the wallet identifier.
func (w Wallet) ID() WalletID {
	return w.id
}

// Balance returns the current balance.
func (w Wallet) Balance() money.Money {
	return w.balance
}

// HasBalance reports whether the wallet can cover the given amount.
func (w Wallet) HasBalance(amount money.Money) bool {
	return w.balance.GreaterThanOrEqual(amount)
}

// WithAddedBalance returns a wallet with the amount credited.
func (w Wallet) WithAddedBalance(amount money.Money) Wallet {
	return Wallet{id: w.id, balance: w.balance.Add(amount)}
}

// WithDeductedBalance returns a wallet with the amount debited, or an error
// if the debit would leave the balance negative.
func (w Wallet) WithDeductedBalance(amount money.Money) (Wallet, error) {
	remaining := w.balance.Subtract(amount)
	if remaining.IsNegative() {
		return Wallet{}, ErrNegativeWalletBalance
	}
	return Wallet{id: w.id, balance: remaining}, nil
}

package domain

import (
	"errors"
	"strings"
	"time"

	"walletpay/internal/common/money"
)

var (
	ErrSelfTransfer          = errors.New("payer and payee must differ")
	ErrNonPositiveAmount     = errors.New("transfer amount must be positive")
	ErrTransferNotPending    = errors.New("transfer is not pending")
	ErrTransferNotAuthorized = errors.New("transfer is not authorized")
	ErrTransferAlreadyFinal  = errors.New("transfer already reached a final state")
	ErrEmptyFailureReason    = errors.New("failure reason must not be blank")
)

// TransferStatus is the lifecycle state of a transfer.
type TransferStatus string

const (
	TransferPending    TransferStatus = "PENDING"
	TransferAuthorized TransferStatus = "AUTHORIZED"
	TransferCompleted  TransferStatus = "COMPLETED"
	TransferFailed     TransferStatus = "FAILED"
)

// IsFinal reports whether the status permits no further transitions.
func (s TransferStatus) IsFinal() bool {
	return s == TransferCompleted || s == TransferFailed
}

// Transfer moves money from a payer to a payee. It advances through
// PENDING, AUTHORIZED and COMPLETED, or drops to FAILED from either
// non-final state. Transitions return a new Transfer; the receiver is
// never mutated.
type Transfer struct {
	id            TransferID
	payerID       UserID
	payeeID       UserID
	amount        money.Money
	status        TransferStatus
	failureReason string
	createdAt     time.Time
	authorizedAt  time.Time
	completedAt   time.Time
	failedAt      time.Time
}

// NewTransfer creates a pending transfer. Self transfers and non-positive
// amounts are rejected here, before anything touches storage.
func NewTransfer(payerID, payeeID UserID, amount money.Money) (*Transfer, error) {
	if payerID.Equal(payeeID) {
		return nil, ErrSelfTransfer
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	return &Transfer{
		id:        NewTransferID(),
		payerID:   payerID,
		payeeID:   payeeID,
		amount:    amount,
		status:    TransferPending,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstituteTransfer rebuilds a transfer from storage without re-running
// creation checks.
func ReconstituteTransfer(
	id TransferID,
	payerID, payeeID UserID,
	amount money.Money,
	status TransferStatus,
	failureReason string,
	createdAt, authorizedAt, completedAt, failedAt time.Time,
) *Transfer {
	return &Transfer{
		id:            id,
		payerID:       payerID,
		payeeID:       payeeID,
		amount:        amount,
		status:        status,
		failureReason: failureReason,
		createdAt:     createdAt,
		authorizedAt:  authorizedAt,
		completedAt:   completedAt,
		failedAt:      failedAt,
	}
}

// ID returns the transfer identifier.
func (t *Transfer) ID() TransferID { return t.id }

// PayerID returns the sending user's identifier.
func (t *Transfer) PayerID() UserID { return t.payerID }

// PayeeID returns the receiving user's identifier.
func (t *Transfer) PayeeID() UserID { return t.payeeID }

// Amount returns the transfer amount.
func (t *Transfer) Amount() money.Money { return t.amount }

// Status returns the current lifecycle state.
func (t *Transfer) Status() TransferStatus { return t.status }

// FailureReason returns why the transfer failed, or "" if it has not.
func (t *Transfer) FailureReason() string { return t.failureReason }

// CreatedAt returns when the transfer was created.
func (t *Transfer) CreatedAt() time.Time { return t.createdAt }

// AuthorizedAt returns when the transfer was authorized, zero if never.
func (t *Transfer) AuthorizedAt() time.Time { return t.authorizedAt }

// CompletedAt returns when the transfer completed, zero if never.
func (t *Transfer) CompletedAt() time.Time { return t.completedAt }

// FailedAt returns when the transfer failed, zero if never.
func (t *Transfer) FailedAt() time.Time { return t.failedAt }

// Authorize transitions PENDING to AUTHORIZED.
func (t *Transfer) Authorize() (*Transfer, error) {
	if t.status != TransferPending {
		return nil, ErrTransferNotPending
	}

	next := *t
	next.status = TransferAuthorized
	next.authorizedAt = time.Now().UTC()
	return &next, nil
}

// Complete transitions AUTHORIZED to COMPLETED.
func (t *Transfer) Complete() (*Transfer, error) {
	if t.status != TransferAuthorized {
		return nil, ErrTransferNotAuthorized
	}

	next := *t
	next.status = TransferCompleted
	next.completedAt = time.Now().UTC()
	return &next, nil
}

// Fail transitions PENDING or AUTHORIZED to FAILED with a reason. The
// reason is trimmed and must not be blank.
func (t *Transfer) Fail(reason string) (*Transfer, error) {
	if t.status.IsFinal() {
		return nil, ErrTransferAlreadyFinal
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyFailureReason
	}

	next := *t
	next.status = TransferFailed
	next.failureReason = reason
	next.failedAt = time.Now().UTC()
	return &next, nil
}

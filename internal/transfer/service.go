// Package transfer implements peer to peer money movement between user
// wallets.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"walletpay/internal/common/database"
	"walletpay/internal/common/events"
	"walletpay/internal/common/money"
	"walletpay/internal/transfer/domain"
)

// Service errors
var (
	ErrPayerNotFound = errors.New("payer not found")
	ErrPayeeNotFound = errors.New("payee not found")
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// DecisionDenied means the authorizer answered and said no.
	DecisionDenied Decision = iota
	// DecisionAuthorized means the authorizer answered and said yes.
	DecisionAuthorized
	// DecisionTransportError means the authorizer could not be reached.
	// It is treated as a denial; transfers never proceed unauthorized.
	DecisionTransportError
)

// UserRepository loads and persists users with their wallets.
type UserRepository interface {
	FindByID(ctx context.Context, id domain.UserID) (domain.User, error)
	// FindPairForUpdate loads both users under row locks, always locking
	// in ascending identifier order so concurrent transfers between the
	// same pair cannot deadlock.
	FindPairForUpdate(ctx context.Context, a, b domain.UserID) (LockedUserPair, error)
	Save(ctx context.Context, user domain.User) error
}

// LockedUserPair holds two users loaded under row locks, keyed back to the
// identifiers the caller asked for.
type LockedUserPair struct {
	users map[string]domain.User
}

// NewLockedUserPair builds a pair from two loaded users.
func NewLockedUserPair(a, b domain.User) LockedUserPair {
	return LockedUserPair{users: map[string]domain.User{
		a.ID().String(): a,
		b.ID().String(): b,
	}}
}

// Get returns the user with the given identifier.
func (p LockedUserPair) Get(id domain.UserID) (domain.User, bool) {
	u, ok := p.users[id.String()]
	return u, ok
}

// TransferRepository persists transfers.
type TransferRepository interface {
	Save(ctx context.Context, transfer *domain.Transfer) error
	FindByID(ctx context.Context, id domain.TransferID) (*domain.Transfer, error)
}

// TransactionManager runs a function inside a database transaction.
// Repository calls made with the callback's context join that transaction.
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Authorizer consults the external authorization service.
type Authorizer interface {
	Authorize(ctx context.Context, transfer *domain.Transfer) Decision
}

// Service orchestrates transfers
type Service struct {
	users     UserRepository
	transfers TransferRepository
	tx        TransactionManager
	auth      Authorizer
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates a new transfer service
func NewService(
	users UserRepository,
	transfers TransferRepository,
	tx TransactionManager,
	auth Authorizer,
	publisher events.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:     users,
		transfers: transfers,
		tx:        tx,
		auth:      auth,
		publisher: publisher,
		logger:    logger,
	}
}

// TransferCommand is a request to move money between two users.
type TransferCommand struct {
	PayerID     string `json:"payer" validate:"required"`
	PayeeID     string `json:"payee" validate:"required"`
	AmountCents int64  `json:"value" validate:"required,gt=0"`
}

// TransferResult describes the outcome of a transfer attempt.
type TransferResult struct {
	TransferID    string                `json:"transfer_id"`
	Status        domain.TransferStatus `json:"status"`
	FailureReason string                `json:"failure_reason,omitempty"`
}

// TransferMoney runs the full transfer flow: validate the request against
// an advisory read of both users, persist the pending transfer, consult the
// authorizer, then debit and credit under row locks in a single database
// transaction. A denial from the authorizer fails the transfer but is not
// an error; the caller gets the failed result back.
func (s *Service) TransferMoney(ctx context.Context, cmd TransferCommand) (*TransferResult, error) {
	payerID, err := domain.NewUserID(cmd.PayerID)
	if err != nil {
		return nil, fmt.Errorf("parsing payer id: %w", err)
	}
	payeeID, err := domain.NewUserID(cmd.PayeeID)
	if err != nil {
		return nil, fmt.Errorf("parsing payee id: %w", err)
	}
	amount := money.FromCents(cmd.AmountCents)

	// Advisory read: reject obviously bad requests before persisting
	// anything or calling the authorizer. The balance is re-checked under
	// row locks before money moves.
	payer, err := s.users.FindByID(ctx, payerID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrPayerNotFound, payerID)
		}
		return nil, fmt.Errorf("loading payer: %w", err)
	}
	if _, err := s.users.FindByID(ctx, payeeID); err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrPayeeNotFound, payeeID)
		}
		return nil, fmt.Errorf("loading payee: %w", err)
	}

	transfer, err := domain.NewTransfer(payerID, payeeID, amount)
	if err != nil {
		return nil, err
	}

	if !payer.CanSendMoney() {
		return nil, domain.ErrUserCannotSendMoney
	}
	if !payer.HasSufficientBalance(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	if err := s.transfers.Save(ctx, transfer); err != nil {
		return nil, fmt.Errorf("saving transfer: %w", err)
	}

	switch s.auth.Authorize(ctx, transfer) {
	case DecisionAuthorized:
	case DecisionTransportError:
		s.logger.Warn("authorization service unreachable, denying transfer",
			"transfer_id", transfer.ID().String(),
		)
		return s.failTransfer(ctx, transfer, "Authorization denied")
	default:
		return s.failTransfer(ctx, transfer, "Authorization denied")
	}

	transfer, err = transfer.Authorize()
	if err != nil {
		return nil, err
	}
	if err := s.transfers.Save(ctx, transfer); err != nil {
		return nil, fmt.Errorf("saving authorized transfer: %w", err)
	}

	var completed *domain.Transfer
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		pair, err := s.users.FindPairForUpdate(ctx, payerID, payeeID)
		if err != nil {
			return fmt.Errorf("locking users: %w", err)
		}

		lockedPayer, ok := pair.Get(payerID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPayerNotFound, payerID)
		}
		lockedPayee, ok := pair.Get(payeeID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPayeeNotFound, payeeID)
		}

		// Re-validate against the locked rows; the advisory read may be
		// stale by now.
		debitedPayer, err := lockedPayer.DebitWallet(amount)
		if err != nil {
			return err
		}
		creditedPayee := lockedPayee.CreditWallet(amount)

		if err := s.users.Save(ctx, debitedPayer); err != nil {
			return fmt.Errorf("saving payer: %w", err)
		}
		if err := s.users.Save(ctx, creditedPayee); err != nil {
			return fmt.Errorf("saving payee: %w", err)
		}

		completed, err = transfer.Complete()
		if err != nil {
			return err
		}
		return s.transfers.Save(ctx, completed)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrUserCannotSendMoney) {
			return s.failTransfer(ctx, transfer, err.Error())
		}
		return nil, err
	}

	s.publishCompleted(ctx, completed)

	s.logger.Info("transfer completed",
		"transfer_id", completed.ID().String(),
		"payer_id", payerID.String(),
		"payee_id", payeeID.String(),
		"amount", amount.Cents(),
	)

	return &TransferResult{
		TransferID: completed.ID().String(),
		Status:     completed.Status(),
	}, nil
}

// GetTransfer retrieves a transfer by ID
func (s *Service) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	transferID, err := domain.ParseTransferID(id)
	if err != nil {
		return nil, err
	}
	return s.transfers.FindByID(ctx, transferID)
}

// failTransfer marks the transfer failed and persists it. The returned
// result carries the failure; no error means the failure itself was
// recorded cleanly.
func (s *Service) failTransfer(ctx context.Context, transfer *domain.Transfer, reason string) (*TransferResult, error) {
	failed, err := transfer.Fail(reason)
	if err != nil {
		return nil, err
	}
	if err := s.transfers.Save(ctx, failed); err != nil {
		return nil, fmt.Errorf("saving failed transfer: %w", err)
	}

	s.publishFailed(ctx, failed)

	s.logger.Info("transfer failed",
		"transfer_id", failed.ID().String(),
		"reason", reason,
	)

	return &TransferResult{
		TransferID:    failed.ID().String(),
		Status:        failed.Status(),
		FailureReason: failed.FailureReason(),
	}, nil
}

func (s *Service) publishCompleted(ctx context.Context, transfer *domain.Transfer) {
	data := events.TransferCompletedData{
		TransferID:  transfer.ID().String(),
		PayerID:     transfer.PayerID().String(),
		PayeeID:     transfer.PayeeID().String(),
		Amount:      transfer.Amount().Cents(),
		Status:      string(transfer.Status()),
		CompletedAt: transfer.CompletedAt(),
	}

	event, err := events.NewEvent(events.EventTransferCompleted, "transfer", transfer.ID().String(), data)
	if err != nil {
		s.logger.Error("building transfer completed event", "error", err)
		return
	}

	// Publishing is best effort; the money has already moved.
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publishing transfer completed event",
			"error", err,
			"transfer_id", transfer.ID().String(),
		)
	}
}

func (s *Service) publishFailed(ctx context.Context, transfer *domain.Transfer) {
	data := events.TransferFailedData{
		TransferID:    transfer.ID().String(),
		PayerID:       transfer.PayerID().String(),
		PayeeID:       transfer.PayeeID().String(),
		Amount:        transfer.Amount().Cents(),
		FailureReason: transfer.FailureReason(),
		FailedAt:      transfer.FailedAt(),
	}

	event, err := events.NewEvent(events.EventTransferFailed, "transfer", transfer.ID().String(), data)
	if err != nil {
		s.logger.Error("building transfer failed event", "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publishing transfer failed event",
			"error", err,
			"transfer_id", transfer.ID().String(),
		)
	}
}

// Package store provides pgx-backed persistence for users, wallets and
// transfers.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"walletpay/internal/common/database"
	"walletpay/internal/common/money"
	"walletpay/internal/transfer"
	"walletpay/internal/transfer/domain"
)

// txKey carries an open transaction through context so repository methods
// join it transparently.
type txKey struct{}

// Store holds the shared connection pool and transaction plumbing. The
// Users and Transfers views expose the repository contracts on top of it.
type Store struct {
	db *database.DB
}

// New creates a new store
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// Users returns the user repository view.
func (s *Store) Users() *UserStore {
	return &UserStore{s: s}
}

// Transfers returns the transfer repository view.
func (s *Store) Transfers() *TransferStore {
	return &TransferStore{s: s}
}

// querier returns the transaction from context when one is open, otherwise
// the pool.
func (s *Store) querier(ctx context.Context) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.db.Pool()
}

// InTransaction runs fn inside a database transaction, retrying on
// serialization failure. Store calls made with fn's context run on the
// same transaction.
func (s *Store) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.Retry(ctx, 3, func() error {
		return s.db.WithTx(ctx, func(tx pgx.Tx) error {
			return fn(context.WithValue(ctx, txKey{}, tx))
		})
	})
}

// UserStore persists users with their wallets
type UserStore struct {
	s *Store
}

const userColumns = `
	u.id, u.name, u.email, u.document_number, u.password_hash, u.user_type,
	w.id, w.balance_cents
`

// FindByID loads a user with their wallet.
func (us *UserStore) FindByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN wallets w ON w.user_id = u.id
		WHERE u.id = $1
	`

	row := us.s.querier(ctx).QueryRow(ctx, query, id.String())
	return scanUser(row)
}

// FindPairForUpdate loads both users with their wallets under FOR UPDATE
// row locks, locking in ascending identifier order so concurrent transfers
// between the same pair cannot deadlock. Must run inside InTransaction.
func (us *UserStore) FindPairForUpdate(ctx context.Context, a, b domain.UserID) (transfer.LockedUserPair, error) {
	first, second := a, b
	if second.String() < first.String() {
		first, second = second, first
	}

	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN wallets w ON w.user_id = u.id
		WHERE u.id = $1
		FOR UPDATE OF u, w
	`

	q := us.s.querier(ctx)

	firstUser, err := scanUser(q.QueryRow(ctx, query, first.String()))
	if err != nil {
		return transfer.LockedUserPair{}, fmt.Errorf("locking user %s: %w", first, err)
	}
	secondUser, err := scanUser(q.QueryRow(ctx, query, second.String()))
	if err != nil {
		return transfer.LockedUserPair{}, fmt.Errorf("locking user %s: %w", second, err)
	}

	return transfer.NewLockedUserPair(firstUser, secondUser), nil
}

// Save upserts a user and their wallet balance.
func (us *UserStore) Save(ctx context.Context, user domain.User) error {
	q := us.s.querier(ctx)

	userQuery := `
		INSERT INTO users (id, name, email, document_number, document_type, password_hash, user_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			updated_at = now()
	`

	_, err := q.Exec(ctx, userQuery,
		user.ID().String(),
		user.Name(),
		user.Email().String(),
		user.Document().Number(),
		string(user.Document().Type()),
		user.Password().Hash(),
		string(user.Type()),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("email or document already registered: %w", database.ErrAlreadyExists)
		}
		return fmt.Errorf("saving user: %w", err)
	}

	walletQuery := `
		INSERT INTO wallets (id, user_id, balance_cents, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			balance_cents = EXCLUDED.balance_cents,
			updated_at = now()
	`

	_, err = q.Exec(ctx, walletQuery,
		user.Wallet().ID().String(),
		user.ID().String(),
		user.Wallet().Balance(),
	)
	if err != nil {
		if database.IsCheckViolation(err) {
			return domain.ErrNegativeWalletBalance
		}
		return fmt.Errorf("saving wallet: %w", err)
	}

	return nil
}

// TransferStore persists transfers
type TransferStore struct {
	s *Store
}

// Save upserts a transfer row.
func (ts *TransferStore) Save(ctx context.Context, t *domain.Transfer) error {
	query := `
		INSERT INTO transfers (id, payer_id, payee_id, amount_cents, status, failure_reason,
			created_at, authorized_at, completed_at, failed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			failure_reason = EXCLUDED.failure_reason,
			authorized_at = EXCLUDED.authorized_at,
			completed_at = EXCLUDED.completed_at,
			failed_at = EXCLUDED.failed_at
	`

	_, err := ts.s.querier(ctx).Exec(ctx, query,
		t.ID().String(),
		t.PayerID().String(),
		t.PayeeID().String(),
		t.Amount(),
		string(t.Status()),
		nullIfEmpty(t.FailureReason()),
		t.CreatedAt(),
		nullIfZero(t.AuthorizedAt()),
		nullIfZero(t.CompletedAt()),
		nullIfZero(t.FailedAt()),
	)
	if err != nil {
		return fmt.Errorf("saving transfer: %w", err)
	}

	return nil
}

// FindByID loads a transfer.
func (ts *TransferStore) FindByID(ctx context.Context, id domain.TransferID) (*domain.Transfer, error) {
	query := `
		SELECT id, payer_id, payee_id, amount_cents, status, failure_reason,
			created_at, authorized_at, completed_at, failed_at
		FROM transfers
		WHERE id = $1
	`

	row := ts.s.querier(ctx).QueryRow(ctx, query, id.String())

	var (
		rawID, rawPayer, rawPayee, rawStatus string
		amount                               money.Money
		failureReason                        *string
		createdAt                            time.Time
		authorizedAt, completedAt, failedAt  *time.Time
	)

	err := row.Scan(&rawID, &rawPayer, &rawPayee, &amount, &rawStatus, &failureReason,
		&createdAt, &authorizedAt, &completedAt, &failedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transfer %s: %w", id, database.ErrNotFound)
		}
		return nil, fmt.Errorf("loading transfer: %w", err)
	}

	transferID, err := domain.ParseTransferID(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored transfer id: %w", err)
	}
	payerID, err := domain.NewUserID(rawPayer)
	if err != nil {
		return nil, fmt.Errorf("stored payer id: %w", err)
	}
	payeeID, err := domain.NewUserID(rawPayee)
	if err != nil {
		return nil, fmt.Errorf("stored payee id: %w", err)
	}

	return domain.ReconstituteTransfer(
		transferID,
		payerID,
		payeeID,
		amount,
		domain.TransferStatus(rawStatus),
		derefString(failureReason),
		createdAt,
		derefTime(authorizedAt),
		derefTime(completedAt),
		derefTime(failedAt),
	), nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		rawID, name, rawEmail, rawDocument string
		passwordHash, rawType              string
		rawWalletID                        string
		balance                            money.Money
	)

	err := row.Scan(&rawID, &name, &rawEmail, &rawDocument, &passwordHash, &rawType,
		&rawWalletID, &balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, database.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("scanning user: %w", err)
	}

	id, err := domain.NewUserID(rawID)
	if err != nil {
		return domain.User{}, fmt.Errorf("stored user id: %w", err)
	}
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return domain.User{}, fmt.Errorf("stored email: %w", err)
	}
	document, err := domain.NewDocument(rawDocument)
	if err != nil {
		return domain.User{}, fmt.Errorf("stored document: %w", err)
	}
	password, err := domain.PasswordFromHash(passwordHash)
	if err != nil {
		return domain.User{}, fmt.Errorf("stored password hash: %w", err)
	}
	userType, err := domain.ParseUserType(rawType)
	if err != nil {
		return domain.User{}, fmt.Errorf("stored user type: %w", err)
	}
	walletID, err := domain.NewWalletID(rawWalletID)
	if err != nil {
		return domain.User{}, fmt.Errorf("stored wallet id: %w", err)
	}
	wallet, err := domain.NewWallet(walletID, balance)
	if err != nil {
		return domain.User{}, fmt.Errorf("stored wallet: %w", err)
	}

	return domain.NewUser(id, name, email, document, password, userType, wallet)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullIfZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

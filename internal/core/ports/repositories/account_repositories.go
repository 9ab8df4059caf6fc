package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
// Every lookup is scoped to the owning user; a row owned by someone else is ErrNotFound.
type AccountReader interface {
	// FindAccountByID retrieves a specific account owned by userID.
	FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts owned by userID ordered by name.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an account's name and type. The balance column is never touched.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that run inside a caller-owned transaction.
type AccountTransactionSupport interface {
	// SaveAccountInTx persists a new zero-balance account within tx.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// FindAccountForUpdate selects an owned account and locks its row until tx ends.
	FindAccountForUpdate(ctx context.Context, tx pgx.Tx, userID string, accountID string) (*domain.Account, error)

	// ApplyBalanceDeltaInTx adds delta to the account balance within tx.
	ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, userID string, accountID string, delta decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

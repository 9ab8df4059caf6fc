package repositories

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// TransactionReader defines read operations over the transaction log
type TransactionReader interface {
	// FindTransactionViewByID returns an owned transaction joined with account and profile details.
	FindTransactionViewByID(ctx context.Context, userID string, transactionID string) (*domain.TransactionView, error)

	// ListTransactions returns the owner's transactions newest first, narrowed by filter.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.TransactionView, error)
}

// TransactionWriter defines the single write the ledger allows.
type TransactionWriter interface {
	// RecordTransaction inserts txn and adds txn.Amount to its account balance in one
	// database transaction. The account row is locked for the duration.
	RecordTransaction(ctx context.Context, txn domain.Transaction) (*domain.TransactionView, error)

	// CreateAccountWithOpeningBalance inserts account, then records opening against it
	// flagged as an opening entry, all in one database transaction.
	CreateAccountWithOpeningBalance(ctx context.Context, account domain.Account, opening domain.Transaction) (*domain.TransactionView, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

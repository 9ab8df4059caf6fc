package services

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/dto"
)

// LedgerWriterSvc defines the only way money moves in or out of an account.
type LedgerWriterSvc interface {
	// RecordTransaction validates and normalises req, then inserts it and applies its
	// signed amount to the account balance atomically.
	RecordTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.TransactionView, error)
}

// LedgerReaderSvc defines read operations over the transaction log
type LedgerReaderSvc interface {
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.TransactionView, error)

	// ListTransactions returns a page of transactions and the token for the next page,
	// nil when there is none.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.TransactionView, *string, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}

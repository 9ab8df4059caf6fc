package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	AccountID       string          `db:"account_id"`
	ProfileID       sql.NullString  `db:"profile_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType string          `db:"transaction_type"`
	Category        string          `db:"category"`
	Description     sql.NullString  `db:"description"`
	IsShared        bool            `db:"is_shared"`
	IsOpening       bool            `db:"is_opening"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionView is a transaction row joined with account and profile columns.
type TransactionView struct {
	Transaction
	AccountName  string         `db:"account_name"`
	ProfileName  sql.NullString `db:"profile_name"`
	ProfilePhoto sql.NullString `db:"profile_photo"`
}

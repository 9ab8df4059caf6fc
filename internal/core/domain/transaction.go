package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is money in or money out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction is a single signed entry against one account.
// Expenses carry a negative amount, income a positive one.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	AccountID     string          `json:"accountID"`
	ProfileID     *string         `json:"profileID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Description   *string         `json:"description,omitempty"`
	IsShared      bool            `json:"isShared"`
	// IsOpening marks the entry that seeds a new account's balance. Reporting ignores it.
	IsOpening     bool            `json:"isOpening"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionView is a transaction joined with its account and profile details.
type TransactionView struct {
	Transaction
	AccountName  string  `json:"accountName"`
	ProfileName  *string `json:"profileName,omitempty"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
}

// TransactionFilter narrows a transaction listing.
// An empty ProfileID means no profile filter.
type TransactionFilter struct {
	ProfileID  string
	ShowShared bool
	Limit      int
	// Cursor position from a previous page; zero values mean start from the newest.
	AfterDate      time.Time
	AfterCreatedAt time.Time
}

// HasCursor reports whether the filter continues a previous page.
func (f TransactionFilter) HasCursor() bool {
	return !f.AfterDate.IsZero()
}

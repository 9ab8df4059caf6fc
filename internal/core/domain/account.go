package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType is the display kind of an account. Any free text is accepted;
// the constants below are the kinds the reports know about.
type AccountType string

const (
	Checking   AccountType = "Checking"
	Savings    AccountType = "Savings"
	Cash       AccountType = "Cash"
	Investment AccountType = "Investment"
)

// Account represents a money-holding account owned by a user.
// Balance always equals the sum of the signed amounts of the transactions
// recorded against the account; an opening balance is itself a recorded transaction.
type Account struct {
	AccountID   string          `json:"accountID"`
	UserID      string          `json:"userID"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}

// IsInvestment reports whether the account counts toward investment value.
func (a Account) IsInvestment() bool {
	return a.AccountType == Investment
}

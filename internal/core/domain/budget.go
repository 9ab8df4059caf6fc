package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is an allotted amount for one category over one period window.
// Spent is derived from the transaction log and never stored.
type Budget struct {
	BudgetID  string          `json:"budgetID"`
	UserID    string          `json:"userID"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    PeriodKind      `json:"period"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Spent     decimal.Decimal `json:"spent"`
	AuditFields
}

// Remaining is the unspent part of the budget; negative when overspent.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

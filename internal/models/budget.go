package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the row shape of the budgets table plus the derived spent column.
type Budget struct {
	BudgetID  string          `db:"budget_id"`
	UserID    string          `db:"user_id"`
	Category  string          `db:"category"`
	Amount    decimal.Decimal `db:"amount"`
	Period    string          `db:"period"`
	StartDate time.Time       `db:"start_date"`
	EndDate   time.Time       `db:"end_date"`
	Spent     decimal.Decimal `db:"spent"`
	AuditFields
}

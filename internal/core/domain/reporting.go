package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats holds the headline numbers for an owner.
// All values default to zero when nothing matches.
type DashboardStats struct {
	TotalBalance    decimal.Decimal `json:"totalBalance"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	InvestmentValue decimal.Decimal `json:"investmentValue"`
}

// CategoryAmount is an absolute spend total for one category.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlyTrendPoint is the income and expense total for one calendar month.
type MonthlyTrendPoint struct {
	MonthStart time.Time       `json:"monthStart"`
	Income     decimal.Decimal `json:"income"`
	Expenses   decimal.Decimal `json:"expenses"`
}

// Dashboard is the composed dashboard payload.
type Dashboard struct {
	Stats              DashboardStats      `json:"stats"`
	RecentTransactions []TransactionView   `json:"recentTransactions"`
	ExpenseBreakdown   []CategoryAmount    `json:"expenseBreakdown"`
	MonthlyData        []MonthlyTrendPoint `json:"monthlyData"`
}

// TrendMonths is the number of calendar months, current one included, in the trend series.
const TrendMonths = 6

// RecentTransactionsLimit is the number of transactions shown on the dashboard.
const RecentTransactionsLimit = 5

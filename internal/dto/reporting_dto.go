package dto

import (
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardStatsResponse holds the headline numbers.
type DashboardStatsResponse struct {
	TotalBalance    decimal.Decimal `json:"total_balance"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	InvestmentValue decimal.Decimal `json:"investment_value"`
}

// RecentTransactionResponse is the compact transaction row shown on the dashboard.
type RecentTransactionResponse struct {
	TransactionID string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Description   *string         `json:"description"`
	Date          string          `json:"date"`
	AccountName   string          `json:"account_name"`
}

type CategoryAmountResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlyDataResponse is one point of the trend series.
type MonthlyDataResponse struct {
	Month    string          `json:"month"`  // "01".."12"
	Year     int             `json:"year"`   // disambiguates the same month across years
	Period   string          `json:"period"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// DashboardResponse is the full dashboard payload.
type DashboardResponse struct {
	Stats              DashboardStatsResponse      `json:"stats"`
	RecentTransactions []RecentTransactionResponse `json:"recent_transactions"`
	ExpenseBreakdown   []CategoryAmountResponse    `json:"expense_breakdown"`
	MonthlyData        []MonthlyDataResponse       `json:"monthly_data"`
}

// ToDashboardResponse converts the domain dashboard to its wire shape.
func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Stats: DashboardStatsResponse{
			TotalBalance:    d.Stats.TotalBalance,
			MonthlyIncome:   d.Stats.MonthlyIncome,
			MonthlyExpenses: d.Stats.MonthlyExpenses,
			InvestmentValue: d.Stats.InvestmentValue,
		},
		RecentTransactions: make([]RecentTransactionResponse, len(d.RecentTransactions)),
		ExpenseBreakdown:   make([]CategoryAmountResponse, len(d.ExpenseBreakdown)),
		MonthlyData:        make([]MonthlyDataResponse, len(d.MonthlyData)),
	}
	for i, t := range d.RecentTransactions {
		resp.RecentTransactions[i] = RecentTransactionResponse{
			TransactionID: t.TransactionID,
			Amount:        t.Amount,
			Type:          string(t.Type),
			Category:      t.Category,
			Description:   t.Description,
			Date:          t.Date.Format(DateLayout),
			AccountName:   t.AccountName,
		}
	}
	for i, c := range d.ExpenseBreakdown {
		resp.ExpenseBreakdown[i] = CategoryAmountResponse{Category: c.Category, Amount: c.Amount}
	}
	for i, p := range d.MonthlyData {
		resp.MonthlyData[i] = MonthlyDataResponse{
			Month:    fmt.Sprintf("%02d", int(p.MonthStart.Month())),
			Year:     p.MonthStart.Year(),
			Period:   p.MonthStart.Format("2006-01"),
			Income:   p.Income,
			Expenses: p.Expenses,
		}
	}
	return resp
}

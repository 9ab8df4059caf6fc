package dto

import (
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertBudgetRequest creates or replaces the budget for a category in the current period.
type UpsertBudgetRequest struct {
	Category      string          `json:"category" binding:"required,max=100"`
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Period        string          `json:"period"`                                                 // monthly (default), weekly or yearly
	ReferenceDate string          `json:"reference_date" binding:"omitempty,datetime=2006-01-02"` // Defaults to today
}

// UpdateBudgetRequest is a partial budget update. Period bounds are not recomputed.
type UpdateBudgetRequest struct {
	Category *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Amount   *decimal.Decimal `json:"amount"`
	Period   *string          `json:"period"`
}

type BudgetResponse struct {
	BudgetID  string          `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// BudgetEnvelope wraps a budget with a status message.
type BudgetEnvelope struct {
	Msg    string         `json:"msg"`
	Budget BudgetResponse `json:"budget"`
}

func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:  b.BudgetID,
		Category:  b.Category,
		Amount:    b.Amount,
		Period:    string(b.Period),
		StartDate: b.StartDate.Format(DateLayout),
		EndDate:   b.EndDate.Format(DateLayout),
		Spent:     b.Spent,
		Remaining: b.Remaining(),
	}
}

func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}

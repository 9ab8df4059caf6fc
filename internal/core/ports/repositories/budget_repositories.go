package repositories

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// BudgetReader defines read operations for budgets. Returned budgets carry
// Spent computed from the transaction log.
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error)

	// ListBudgets returns all budgets with spent totals ordered by category.
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets
type BudgetWriter interface {
	// UpsertBudget inserts budget, or overwrites the amount of the existing budget for the
	// same (category, period, start, end) window, in a single statement.
	// It returns the id of the affected row and whether it was inserted.
	UpsertBudget(ctx context.Context, budget domain.Budget) (string, bool, error)

	// UpdateBudget overwrites category, amount and period. Bounds are left as stored.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	DeleteBudget(ctx context.Context, userID string, budgetID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}

package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// ReportingRepository defines the read-only aggregate queries behind the dashboard
type ReportingRepository interface {
	// GetDashboardStats sums balances and this month's income and expenses (from monthStart on).
	GetDashboardStats(ctx context.Context, userID string, monthStart time.Time) (*domain.DashboardStats, error)

	// GetRecentTransactions returns the newest transactions joined with account names.
	GetRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.TransactionView, error)

	// GetExpenseBreakdown sums absolute expenses per category from the given date on.
	GetExpenseBreakdown(ctx context.Context, userID string, from time.Time) ([]domain.CategoryAmount, error)

	// GetMonthlyTrend returns per-month income and expense totals from the given month on, oldest first.
	GetMonthlyTrend(ctx context.Context, userID string, from time.Time) ([]domain.MonthlyTrendPoint, error)
}

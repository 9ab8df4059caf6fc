package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetDashboardStats returns the balance total, investment total and this month's
// income and absolute expense totals. Opening-balance entries count toward balances
// only, never toward income or expenses.
func (r *reportingRepository) GetDashboardStats(ctx context.Context, userID string, monthStart time.Time) (*domain.DashboardStats, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(balance) FROM accounts WHERE user_id = $1), 0),
			COALESCE((SELECT SUM(amount) FROM transactions
				WHERE user_id = $1 AND transaction_type = 'income' AND NOT is_opening AND transaction_date >= $2), 0),
			COALESCE((SELECT SUM(ABS(amount)) FROM transactions
				WHERE user_id = $1 AND transaction_type = 'expense' AND NOT is_opening AND transaction_date >= $2), 0),
			COALESCE((SELECT SUM(balance) FROM accounts WHERE user_id = $1 AND account_type = $3), 0)
	`
	var stats domain.DashboardStats
	err := r.Pool.QueryRow(ctx, query, userID, monthStart, string(domain.Investment)).Scan(
		&stats.TotalBalance,
		&stats.MonthlyIncome,
		&stats.MonthlyExpenses,
		&stats.InvestmentValue,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard stats: %w", err)
	}
	return &stats, nil
}

func (r *reportingRepository) GetRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.TransactionView, error) {
	query := transactionViewSelect + `
		WHERE t.user_id = $1
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT $2
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent transactions: %w", err)
	}
	defer rows.Close()

	result := []domain.TransactionView{}
	for rows.Next() {
		m, err := scanTransactionView(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning recent transaction row: %w", err)
		}
		result = append(result, mapping.ToDomainTransactionView(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent transaction rows: %w", err)
	}
	return result, nil
}

func (r *reportingRepository) GetExpenseBreakdown(ctx context.Context, userID string, from time.Time) ([]domain.CategoryAmount, error) {
	query := `
		SELECT category, SUM(ABS(amount)) AS total
		FROM transactions
		WHERE user_id = $1 AND transaction_type = 'expense' AND NOT is_opening AND transaction_date >= $2
		GROUP BY category
		ORDER BY total DESC, category
	`
	rows, err := r.Pool.Query(ctx, query, userID, from)
	if err != nil {
		return nil, fmt.Errorf("error querying expense breakdown: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryAmount{}
	for rows.Next() {
		var row domain.CategoryAmount
		if err := rows.Scan(&row.Category, &row.Amount); err != nil {
			return nil, fmt.Errorf("error scanning expense breakdown row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense breakdown rows: %w", err)
	}
	return result, nil
}

// GetMonthlyTrend returns only the months that have transactions.
func (r *reportingRepository) GetMonthlyTrend(ctx context.Context, userID string, from time.Time) ([]domain.MonthlyTrendPoint, error) {
	query := `
		SELECT
			date_trunc('month', transaction_date)::date AS month_start,
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'income'), 0) AS income,
			COALESCE(SUM(ABS(amount)) FILTER (WHERE transaction_type = 'expense'), 0) AS expenses
		FROM transactions
		WHERE user_id = $1 AND NOT is_opening AND transaction_date >= $2
		GROUP BY month_start
		ORDER BY month_start
	`
	rows, err := r.Pool.Query(ctx, query, userID, from)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly trend: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyTrendPoint{}
	for rows.Next() {
		var row domain.MonthlyTrendPoint
		if err := rows.Scan(&row.MonthStart, &row.Income, &row.Expenses); err != nil {
			return nil, fmt.Errorf("error scanning monthly trend row: %w", err)
		}
		row.MonthStart = row.MonthStart.UTC()
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly trend rows: %w", err)
	}
	return result, nil
}

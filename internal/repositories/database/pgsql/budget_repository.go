package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack_app/internal/models"
	"github.com/SscSPs/fintrack_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// budgetSelect computes spent as the absolute sum of the owner's expenses in the
// budget's category whose date falls inside the inclusive window.
const budgetSelect = `
	SELECT b.budget_id, b.user_id, b.category, b.amount, b.period, b.start_date, b.end_date,
		COALESCE((
			SELECT SUM(ABS(t.amount))
			FROM transactions t
			WHERE t.user_id = b.user_id
				AND t.category = b.category
				AND t.transaction_type = 'expense'
				AND NOT t.is_opening
				AND t.transaction_date BETWEEN b.start_date AND b.end_date
		), 0) AS spent,
		b.created_at, b.last_updated_at
	FROM budgets b
`

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Category,
		&m.Amount,
		&m.Period,
		&m.StartDate,
		&m.EndDate,
		&m.Spent,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	query := budgetSelect + ` WHERE b.budget_id = $1 AND b.user_id = $2;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	d := mapping.ToDomainBudget(m)
	return &d, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := budgetSelect + ` WHERE b.user_id = $1 ORDER BY b.category, b.start_date DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, mapping.ToDomainBudget(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}
	return budgets, nil
}

// UpsertBudget inserts the budget or, when the owner already has one for the same
// category and window, replaces its amount. It reports whether a row was created.
// The conflict target is the uq_budgets_window index, so racing callers both resolve
// to the same row.
func (r *PgxBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) (string, bool, error) {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (budget_id, user_id, category, amount, period, start_date, end_date, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, category, period, start_date, end_date)
		DO UPDATE SET amount = EXCLUDED.amount, last_updated_at = EXCLUDED.last_updated_at
		RETURNING budget_id, (xmax = 0) AS inserted;
	`
	var (
		budgetID string
		inserted bool
	)
	err := r.Pool.QueryRow(ctx, query,
		m.BudgetID, m.UserID, m.Category, m.Amount, m.Period, m.StartDate, m.EndDate, m.CreatedAt, m.LastUpdatedAt,
	).Scan(&budgetID, &inserted)
	if err != nil {
		return "", false, fmt.Errorf("failed to upsert budget for %s: %w", m.Category, err)
	}
	return budgetID, inserted, nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		UPDATE budgets
		SET category = $1, amount = $2, period = $3, last_updated_at = $4
		WHERE budget_id = $5 AND user_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, budget.Category, budget.Amount, string(budget.Period), budget.LastUpdatedAt, budget.BudgetID, budget.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: budget for %s in this period", apperrors.ErrDuplicate, budget.Category)
		}
		return fmt.Errorf("failed to update budget %s: %w", budget.BudgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2;`, budgetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

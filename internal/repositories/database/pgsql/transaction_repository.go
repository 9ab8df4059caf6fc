package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack_app/internal/models"
	"github.com/SscSPs/fintrack_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// transactionViewSelect joins a transaction with its account and optional profile.
const transactionViewSelect = `
	SELECT t.transaction_id, t.user_id, t.account_id, t.profile_id, t.amount, t.transaction_type,
		t.category, t.description, t.is_shared, t.is_opening, t.transaction_date, t.created_at,
		a.name, p.name, p.photo_url
	FROM transactions t
	JOIN accounts a ON a.account_id = t.account_id
	LEFT JOIN profiles p ON p.profile_id = t.profile_id
`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxTransactionRepository creates the ledger repository. Balance updates go
// through accountRepo inside the same database transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransactionView(row pgx.Row) (models.TransactionView, error) {
	var m models.TransactionView
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.ProfileID,
		&m.Amount,
		&m.TransactionType,
		&m.Category,
		&m.Description,
		&m.IsShared,
		&m.IsOpening,
		&m.TransactionDate,
		&m.CreatedAt,
		&m.AccountName,
		&m.ProfileName,
		&m.ProfilePhoto,
	)
	return m, err
}

// RecordTransaction inserts the transaction and moves the account balance by its
// signed amount within one database transaction.
func (r *PgxTransactionRepository) RecordTransaction(ctx context.Context, txn domain.Transaction) (*domain.TransactionView, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the account row so concurrent writers serialize on the balance.
	if _, err := r.accountRepo.FindAccountForUpdate(ctx, tx, txn.UserID, txn.AccountID); err != nil {
		return nil, err
	}

	if err := r.applyInTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindTransactionViewByID(ctx, txn.UserID, txn.TransactionID)
}

// CreateAccountWithOpeningBalance inserts account together with its opening
// transaction and balance in one database transaction. Either all three writes
// land or none do.
func (r *PgxTransactionRepository) CreateAccountWithOpeningBalance(ctx context.Context, account domain.Account, opening domain.Transaction) (*domain.TransactionView, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		return nil, err
	}

	opening.IsOpening = true
	if err := r.applyInTx(ctx, tx, opening); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindTransactionViewByID(ctx, opening.UserID, opening.TransactionID)
}

// applyInTx writes the transaction row and adds its amount to the account balance.
func (r *PgxTransactionRepository) applyInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (
			transaction_id, user_id, account_id, profile_id, amount, transaction_type,
			category, description, is_shared, is_opening, transaction_date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.AccountID,
		m.ProfileID,
		m.Amount,
		m.TransactionType,
		m.Category,
		m.Description,
		m.IsShared,
		m.IsOpening,
		m.TransactionDate,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	return r.accountRepo.ApplyBalanceDeltaInTx(ctx, tx, txn.UserID, txn.AccountID, txn.Amount, txn.CreatedAt)
}

func (r *PgxTransactionRepository) FindTransactionViewByID(ctx context.Context, userID string, transactionID string) (*domain.TransactionView, error) {
	query := transactionViewSelect + ` WHERE t.transaction_id = $1 AND t.user_id = $2;`
	m, err := scanTransactionView(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransactionView(m)
	return &d, nil
}

// ListTransactions returns the owner's transactions ordered by date then creation time,
// newest first. With a profile filter, shared transactions of other profiles are
// included only when ShowShared is set.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.TransactionView, error) {
	query, args := buildListTransactionsQuery(userID, filter)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	views := []domain.TransactionView{}
	for rows.Next() {
		m, err := scanTransactionView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		views = append(views, mapping.ToDomainTransactionView(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return views, nil
}

func buildListTransactionsQuery(userID string, filter domain.TransactionFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(transactionViewSelect)
	sb.WriteString(` WHERE t.user_id = $1`)
	args := []any{userID}

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.ProfileID != "" {
		p := next(filter.ProfileID)
		if filter.ShowShared {
			sb.WriteString(` AND (t.profile_id = ` + p + ` OR t.is_shared)`)
		} else {
			sb.WriteString(` AND t.profile_id = ` + p)
		}
	} else if !filter.ShowShared {
		sb.WriteString(` AND NOT t.is_shared`)
	}

	if filter.HasCursor() {
		d := next(filter.AfterDate)
		c := next(filter.AfterCreatedAt)
		sb.WriteString(` AND (t.transaction_date, t.created_at) < (` + d + `, ` + c + `)`)
	}

	sb.WriteString(` ORDER BY t.transaction_date DESC, t.created_at DESC`)
	if filter.Limit > 0 {
		sb.WriteString(` LIMIT ` + next(filter.Limit))
	}
	return sb.String(), args
}

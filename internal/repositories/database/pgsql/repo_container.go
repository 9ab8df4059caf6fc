package pgsql

import (
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		ProfileRepo:     newPgxProfileRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool, accountRepo),
		BudgetRepo:      newPgxBudgetRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}

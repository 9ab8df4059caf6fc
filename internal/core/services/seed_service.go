package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const demoUsername = "demo"

// openingBalanceDate precedes the demo month.
var openingBalanceDate = time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)

type demoAccount struct {
	name    string
	kind    domain.AccountType
	opening int64
}

type demoTransaction struct {
	account     int // index into demoAccounts
	profile     string
	amount      int64
	txType      domain.TransactionType
	category    string
	description string
	shared      bool
	date        string
}

var demoAccounts = []demoAccount{
	{"HDFC Bank", domain.Checking, 25000},
	{"ICICI Bank", domain.Savings, 75000},
	{"Cash", domain.Cash, 5000},
	{"Zerodha", domain.Investment, 150000},
	{"Spouse Salary Account", domain.Checking, 35000},
}

var demoTransactions = []demoTransaction{
	{0, "primary", 2500, domain.Expense, "Food", "Grocery shopping", false, "2023-04-15"},
	{1, "primary", 45000, domain.Income, "Salary", "Monthly salary", false, "2023-04-01"},
	{2, "primary", 1850, domain.Expense, "Utilities", "Electricity bill", true, "2023-04-10"},
	{4, "spouse", 35000, domain.Income, "Salary", "Monthly salary", false, "2023-04-01"},
	{4, "spouse", 1200, domain.Expense, "Shopping", "Clothes shopping", false, "2023-04-05"},
	{0, "", 3200, domain.Expense, "Food", "Restaurant dinner", true, "2023-04-08"},
	{3, "", 12500, domain.Income, "Investment", "Dividend", true, "2023-04-05"},
	{0, "", 999, domain.Expense, "Utilities", "Mobile bill", true, "2023-04-12"},
	{1, "primary", 15000, domain.Income, "Freelance", "Website project", false, "2023-04-07"},
	{0, "", 800, domain.Expense, "Entertainment", "Movie tickets", true, "2023-04-09"},
	{2, "", 1499, domain.Expense, "Utilities", "Internet bill", true, "2023-04-11"},
	{0, "", 18000, domain.Expense, "Housing", "Rent payment", true, "2023-04-03"},
}

var demoBudgets = []struct {
	category string
	amount   int64
}{
	{"Food", 10000},
	{"Utilities", 5000},
	{"Housing", 20000},
	{"Entertainment", 3000},
	{"Transportation", 4000},
}

// SeedDemoData creates the demo household unless a "demo" user already exists.
// Every amount goes through the ledger so balances match the transaction log.
func SeedDemoData(ctx context.Context, repos portsrepo.RepositoryProvider) error {
	logger := slog.Default()

	if _, err := repos.UserRepo.FindUserByUsername(ctx, demoUsername); err == nil {
		logger.Info("Demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check for demo user: %w", err)
	}

	users := NewUserService(repos.UserRepo)
	profiles := NewProfileService(repos.ProfileRepo)
	ledger := NewLedgerService(repos.TransactionRepo, repos.ProfileRepo)
	budgets := NewBudgetService(repos.BudgetRepo)

	user, err := users.CreateUser(ctx, dto.CreateUserRequest{
		Username: demoUsername,
		Email:    "demo@example.com",
		Password: "password",
		Name:     "Demo User",
	})
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	profileIDs := map[string]string{}
	for _, p := range []dto.CreateProfileRequest{
		{Name: "Dr. Ravi", Type: string(domain.ProfilePrimary), PhotoURL: strPtr("profile_ravi.jpg")},
		{Name: "Mrs. Ravi", Type: string(domain.ProfileSpouse), PhotoURL: strPtr("profile_spouse.jpg")},
	} {
		profile, err := profiles.CreateProfile(ctx, user.UserID, p)
		if err != nil {
			return fmt.Errorf("failed to create demo profile %s: %w", p.Name, err)
		}
		profileIDs[p.Type] = profile.ProfileID
	}

	recorded := make([]domain.Transaction, 0, len(demoAccounts)+len(demoTransactions))
	accountIDs := make([]string, len(demoAccounts))
	for i, a := range demoAccounts {
		account := domain.Account{
			AccountID:   uuid.NewString(),
			UserID:      user.UserID,
			Name:        a.name,
			AccountType: a.kind,
			AuditFields: domain.AuditFields{CreatedAt: user.CreatedAt, LastUpdatedAt: user.CreatedAt},
		}
		opening := domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        user.UserID,
			AccountID:     account.AccountID,
			Amount:        decimal.NewFromInt(a.opening),
			Type:          domain.Income,
			Category:      openingBalanceCategory,
			IsOpening:     true,
			Date:          openingBalanceDate,
			CreatedAt:     user.CreatedAt,
		}
		view, err := repos.TransactionRepo.CreateAccountWithOpeningBalance(ctx, account, opening)
		if err != nil {
			return fmt.Errorf("failed to create demo account %s: %w", a.name, err)
		}
		accountIDs[i] = account.AccountID
		recorded = append(recorded, view.Transaction)
	}

	for _, t := range demoTransactions {
		req := dto.CreateTransactionRequest{
			AccountID:   accountIDs[t.account],
			Amount:      decimal.NewFromInt(t.amount),
			Type:        t.txType,
			Category:    t.category,
			Description: strPtr(t.description),
			IsShared:    t.shared,
			Date:        t.date,
		}
		if t.profile != "" {
			req.ProfileID = strPtr(profileIDs[t.profile])
		}
		view, err := ledger.RecordTransaction(ctx, user.UserID, req)
		if err != nil {
			return fmt.Errorf("failed to record demo transaction %q: %w", t.description, err)
		}
		recorded = append(recorded, view.Transaction)
	}

	for _, b := range demoBudgets {
		if _, _, err := budgets.UpsertBudget(ctx, user.UserID, dto.UpsertBudgetRequest{
			Category:      b.category,
			Amount:        decimal.NewFromInt(b.amount),
			Period:        string(domain.Monthly),
			ReferenceDate: "2023-04-01",
		}); err != nil {
			return fmt.Errorf("failed to create demo budget %s: %w", b.category, err)
		}
	}

	logger.Info("Demo data seeded",
		slog.String("user_id", user.UserID),
		slog.Int("transactions", len(recorded)),
		slog.String("net_amount", accounting.SumSigned(recorded).String()))
	return nil
}

func strPtr(s string) *string { return &s }

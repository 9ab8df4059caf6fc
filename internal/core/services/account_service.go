package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsevt "github.com/SscSPs/fintrack_app/internal/core/ports/events"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/google/uuid"
)

// openingBalanceCategory labels the transaction that seeds a new account's balance.
const openingBalanceCategory = "Opening Balance"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionWriter
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithOpeningBalanceWriter lets CreateAccount record a non-zero opening balance
// as the account's first transaction, written together with the account row.
func WithOpeningBalanceWriter(repo portsrepo.TransactionWriter) AccountServiceOption {
	return func(s *accountService) {
		s.txnRepo = repo
	}
}

// WithAccountEvents adds the publisher for opening-balance transactions.
func WithAccountEvents(publisher portsevt.EventPublisher) AccountServiceOption {
	return func(s *accountService) {
		s.Events = publisher
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	accountType := strings.TrimSpace(req.Type)
	if accountType == "" {
		return nil, fmt.Errorf("%w: account type is required", apperrors.ErrValidation)
	}
	hasOpening := req.OpeningBalance != nil && !req.OpeningBalance.IsZero()
	if hasOpening && s.txnRepo == nil {
		return nil, fmt.Errorf("%w: opening balance is not supported", apperrors.ErrValidation)
	}

	now := s.CurrentTime()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Name:        name,
		AccountType: domain.AccountType(accountType),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if !hasOpening {
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_name", name))
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
		return &account, nil
	}

	opening := *req.OpeningBalance
	txType := domain.Income
	if opening.IsNegative() {
		txType = domain.Expense
		opening = opening.Abs().Neg()
	}
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     account.AccountID,
		Amount:        opening,
		Type:          txType,
		Category:      openingBalanceCategory,
		IsOpening:     true,
		Date:          domain.DateOnly(now),
		CreatedAt:     now,
	}
	view, err := s.txnRepo.CreateAccountWithOpeningBalance(ctx, account, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to create account with opening balance", slog.String("account_name", name))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	account.Balance = opening
	s.PublishEvent(ctx, domain.EventTransactionRecorded, userID, view.TransactionID)

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.Type != nil {
		accountType := strings.TrimSpace(*req.Type)
		if accountType == "" {
			return nil, fmt.Errorf("%w: account type cannot be empty", apperrors.ErrValidation)
		}
		account.AccountType = domain.AccountType(accountType)
	}
	account.LastUpdatedAt = s.CurrentTime()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

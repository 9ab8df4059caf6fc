package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsevt "github.com/SscSPs/fintrack_app/internal/core/ports/events"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/utils/accounting"
	"github.com/SscSPs/fintrack_app/internal/utils/pagination"
	"github.com/google/uuid"
)

// allProfiles is the listing filter value meaning "no profile filter".
const allProfiles = "all"

type ledgerService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	profileRepo portsrepo.ProfileReader
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerEvents adds the publisher notified after each committed transaction.
func WithLedgerEvents(publisher portsevt.EventPublisher) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Events = publisher
	}
}

// WithLedgerClock overrides the clock used for default dates.
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Now = now
	}
}

// NewLedgerService creates the service that records transactions and lists them.
func NewLedgerService(txnRepo portsrepo.TransactionRepositoryFacade, profileRepo portsrepo.ProfileReader, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		txnRepo:     txnRepo,
		profileRepo: profileRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) RecordTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.TransactionView, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.AccountID) == "" {
		return nil, fmt.Errorf("%w: account_id is required", apperrors.ErrValidation)
	}
	amount, err := accounting.NormalizeAmount(req.Type, req.Amount)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	date, err := dto.ParseDate(req.Date, now)
	if err != nil {
		return nil, err
	}

	var profileID *string
	if req.ProfileID != nil && strings.TrimSpace(*req.ProfileID) != "" {
		id := strings.TrimSpace(*req.ProfileID)
		if _, err := s.profileRepo.FindProfileByID(ctx, userID, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("profile %s: %w", id, apperrors.ErrNotFound)
			}
			s.LogError(ctx, err, "Failed to check transaction profile", slog.String("profile_id", id))
			return nil, fmt.Errorf("failed to check profile: %w", err)
		}
		profileID = &id
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     req.AccountID,
		ProfileID:     profileID,
		Amount:        amount,
		Type:          req.Type,
		Category:      category,
		Description:   req.Description,
		IsShared:      req.IsShared,
		Date:          domain.DateOnly(date),
		CreatedAt:     now,
	}

	view, err := s.txnRepo.RecordTransaction(ctx, txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to record transaction", slog.String("account_id", req.AccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", view.TransactionID),
		slog.String("account_id", view.AccountID),
		slog.String("amount", view.Amount.String()))
	s.PublishEvent(ctx, domain.EventTransactionRecorded, userID, view.TransactionID)
	return view, nil
}

func (s *ledgerService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.TransactionView, error) {
	view, err := s.txnRepo.FindTransactionViewByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return view, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.TransactionView, *string, error) {
	filter, err := transactionFilterFromParams(params)
	if err != nil {
		return nil, nil, err
	}

	txns, err := s.txnRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var nextToken *string
	if filter.Limit > 0 && len(txns) == filter.Limit {
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextToken = &token
	}
	return txns, nextToken, nil
}

// transactionFilterFromParams resolves listing query parameters into a repository filter.
func transactionFilterFromParams(params dto.ListTransactionsParams) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{
		ShowShared: params.WantsShared(),
		Limit:      params.Limit,
	}
	if p := strings.TrimSpace(params.ProfileID); p != "" && !strings.EqualFold(p, allProfiles) {
		filter.ProfileID = p
	}
	if params.NextToken != nil && *params.NextToken != "" {
		date, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return domain.TransactionFilter{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.AfterDate = date
		filter.AfterCreatedAt = createdAt
	}
	return filter, nil
}

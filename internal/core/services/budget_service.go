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
	"github.com/google/uuid"
)

type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// BudgetServiceOption is a functional option for configuring the budget service
type BudgetServiceOption func(*budgetService)

// WithBudgetEvents adds the publisher notified after each budget mutation.
func WithBudgetEvents(publisher portsevt.EventPublisher) BudgetServiceOption {
	return func(s *budgetService) {
		s.Events = publisher
	}
}

// WithBudgetClock overrides the clock used when no reference date is given.
func WithBudgetClock(now func() time.Time) BudgetServiceOption {
	return func(s *budgetService) {
		s.Now = now
	}
}

// NewBudgetService creates the budget reconciler.
func NewBudgetService(repo portsrepo.BudgetRepositoryFacade, options ...BudgetServiceOption) portssvc.BudgetSvcFacade {
	svc := &budgetService{budgetRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) UpsertBudget(ctx context.Context, userID string, req dto.UpsertBudgetRequest) (*domain.Budget, bool, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, false, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, false, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := s.CurrentTime()
	ref, err := dto.ParseDate(req.ReferenceDate, now)
	if err != nil {
		return nil, false, err
	}
	period := domain.ParsePeriodKind(req.Period)
	start, end := domain.PeriodBounds(ref, period)

	budget := domain.Budget{
		BudgetID:  uuid.NewString(),
		UserID:    userID,
		Category:  category,
		Amount:    req.Amount,
		Period:    period,
		StartDate: start,
		EndDate:   end,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	budgetID, created, err := s.budgetRepo.UpsertBudget(ctx, budget)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert budget",
			slog.String("category", category),
			slog.String("period", string(period)))
		return nil, false, fmt.Errorf("failed to upsert budget: %w", err)
	}

	saved, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload budget", slog.String("budget_id", budgetID))
		return nil, false, fmt.Errorf("failed to reload budget: %w", err)
	}

	s.LogInfo(ctx, "Budget upserted", slog.String("budget_id", budgetID), slog.Bool("created", created))
	s.PublishEvent(ctx, domain.EventBudgetUpserted, userID, budgetID)
	return saved, created, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget", slog.String("budget_id", budgetID))
		}
		return nil, err
	}

	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, fmt.Errorf("%w: category cannot be empty", apperrors.ErrValidation)
		}
		budget.Category = category
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		budget.Period = domain.ParsePeriodKind(*req.Period)
	}
	budget.LastUpdatedAt = s.CurrentTime()

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	updated, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload budget: %w", err)
	}
	s.PublishEvent(ctx, domain.EventBudgetUpdated, userID, budgetID)
	return updated, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, userID, budgetID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		}
		return err
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	s.PublishEvent(ctx, domain.EventBudgetDeleted, userID, budgetID)
	return nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

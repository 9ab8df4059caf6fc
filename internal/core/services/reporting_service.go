package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the clock that decides the current month.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Now = now
	}
}

// NewReportingService creates the dashboard aggregation service.
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{reportingRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	now := s.CurrentTime()
	monthStart := domain.MonthStart(now, 0)
	trendStart := domain.MonthStart(now, -(domain.TrendMonths - 1))

	var (
		stats     *domain.DashboardStats
		recent    []domain.TransactionView
		breakdown []domain.CategoryAmount
		trend     []domain.MonthlyTrendPoint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.reportingRepo.GetDashboardStats(gctx, userID, monthStart)
		if err != nil {
			return fmt.Errorf("dashboard stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recent, err = s.reportingRepo.GetRecentTransactions(gctx, userID, domain.RecentTransactionsLimit)
		if err != nil {
			return fmt.Errorf("recent transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.reportingRepo.GetExpenseBreakdown(gctx, userID, monthStart)
		if err != nil {
			return fmt.Errorf("expense breakdown: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		trend, err = s.reportingRepo.GetMonthlyTrend(gctx, userID, trendStart)
		if err != nil {
			return fmt.Errorf("monthly trend: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to build dashboard")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	dashboard := &domain.Dashboard{
		Stats:              zeroStats(),
		RecentTransactions: recent,
		ExpenseBreakdown:   breakdown,
		MonthlyData:        trend,
	}
	if stats != nil {
		dashboard.Stats = *stats
	}
	if dashboard.RecentTransactions == nil {
		dashboard.RecentTransactions = []domain.TransactionView{}
	}
	if dashboard.ExpenseBreakdown == nil {
		dashboard.ExpenseBreakdown = []domain.CategoryAmount{}
	}
	if dashboard.MonthlyData == nil {
		dashboard.MonthlyData = []domain.MonthlyTrendPoint{}
	}
	return dashboard, nil
}

func zeroStats() domain.DashboardStats {
	return domain.DashboardStats{
		TotalBalance:    decimal.Zero,
		MonthlyIncome:   decimal.Zero,
		MonthlyExpenses: decimal.Zero,
		InvestmentValue: decimal.Zero,
	}
}

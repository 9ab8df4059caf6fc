package services

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// GetDashboard composes stats, recent transactions, the current month's expense
	// breakdown and the trailing monthly trend.
	GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error)
}

package services

import (
	"context"
	"io"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/dto"
)

// ExportSvc renders a transaction listing as a downloadable file.
type ExportSvc interface {
	ExportTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams, format domain.ExportFormat, w io.Writer) error
}

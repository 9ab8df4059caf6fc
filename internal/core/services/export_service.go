package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Transactions"

var exportHeaders = []string{"Date", "Type", "Category", "Description", "Amount", "Account", "Profile", "Shared"}

var exportColWidths = []float64{12, 10, 18, 32, 14, 20, 16, 8}

type exportService struct {
	BaseService
	ledger portssvc.LedgerReaderSvc
}

// NewExportService creates the transaction export service on top of the ledger listing.
func NewExportService(ledger portssvc.LedgerReaderSvc) portssvc.ExportSvc {
	return &exportService{ledger: ledger}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

func (s *exportService) ExportTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams, format domain.ExportFormat, w io.Writer) error {
	// Exports always cover the full filtered listing.
	params.Limit = 0
	params.NextToken = nil

	txns, _, err := s.ledger.ListTransactions(ctx, userID, params)
	if err != nil {
		return err
	}

	switch format {
	case domain.ExportCSV:
		err = writeTransactionsCSV(w, txns)
	case domain.ExportXLSX:
		err = writeTransactionsXLSX(w, txns)
	default:
		return fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to write export", "format", string(format))
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	s.LogInfo(ctx, "Transactions exported", "format", string(format), "rows", len(txns))
	return nil
}

func exportRow(t domain.TransactionView) []string {
	return []string{
		t.Date.Format(dto.DateLayout),
		string(t.Type),
		t.Category,
		derefOr(t.Description, ""),
		t.Amount.String(),
		t.AccountName,
		derefOr(t.ProfileName, ""),
		strconv.FormatBool(t.IsShared),
	}
}

func writeTransactionsCSV(w io.Writer, txns []domain.TransactionView) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, t := range txns {
		if err := writer.Write(exportRow(t)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTransactionsXLSX(w io.Writer, txns []domain.TransactionView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return err
	}

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheetName, cell, h); err != nil {
			return err
		}
	}

	for idx, t := range txns {
		row := idx + 2
		values := []any{
			t.Date.Format(dto.DateLayout),
			string(t.Type),
			t.Category,
			derefOr(t.Description, ""),
			t.Amount,
			t.AccountName,
			derefOr(t.ProfileName, ""),
			t.IsShared,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			// Amounts go in as untyped numeric cells holding the exact decimal text.
			if amount, ok := v.(decimal.Decimal); ok {
				err = f.SetCellDefault(exportSheetName, cell, amount.String())
			} else {
				err = f.SetCellValue(exportSheetName, cell, v)
			}
			if err != nil {
				return err
			}
		}
	}

	for i, width := range exportColWidths {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(exportSheetName, colName, colName, width); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

package accounting

import (
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalizeAmount applies the sign convention for a transaction type.
// Expenses are stored as the negative magnitude whatever sign the caller sent.
// Income must be strictly positive.
func NormalizeAmount(txType domain.TransactionType, raw decimal.Decimal) (decimal.Decimal, error) {
	if raw.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: amount must be non-zero", apperrors.ErrValidation)
	}
	switch txType {
	case domain.Expense:
		return raw.Abs().Neg(), nil
	case domain.Income:
		if raw.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: income amount must be positive", apperrors.ErrValidation)
		}
		return raw, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, txType)
	}
}

// SumSigned returns the total of the signed amounts of the given transactions.
func SumSigned(txns []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		sum = sum.Add(t.Amount)
	}
	return sum
}

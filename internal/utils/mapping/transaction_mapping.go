package mapping

import (
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to its row shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		AccountID:       d.AccountID,
		ProfileID:       ToNullString(d.ProfileID),
		Amount:          d.Amount,
		TransactionType: string(d.Type),
		Category:        d.Category,
		Description:     ToNullString(d.Description),
		IsShared:        d.IsShared,
		IsOpening:       d.IsOpening,
		TransactionDate: d.Date,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainTransaction converts a transaction row to the domain type.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		AccountID:     m.AccountID,
		ProfileID:     FromNullString(m.ProfileID),
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.TransactionType),
		Category:      m.Category,
		Description:   FromNullString(m.Description),
		IsShared:      m.IsShared,
		IsOpening:     m.IsOpening,
		Date:          m.TransactionDate,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionView converts a joined transaction row to the domain view.
func ToDomainTransactionView(m models.TransactionView) domain.TransactionView {
	return domain.TransactionView{
		Transaction:  ToDomainTransaction(m.Transaction),
		AccountName:  m.AccountName,
		ProfileName:  FromNullString(m.ProfileName),
		ProfilePhoto: FromNullString(m.ProfilePhoto),
	}
}

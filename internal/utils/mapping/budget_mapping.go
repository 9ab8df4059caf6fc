package mapping

import (
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/models"
)

func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:    d.BudgetID,
		UserID:      d.UserID,
		Category:    d.Category,
		Amount:      d.Amount,
		Period:      string(d.Period),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Spent:       d.Spent,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		UserID:      m.UserID,
		Category:    m.Category,
		Amount:      m.Amount,
		Period:      domain.PeriodKind(m.Period),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Spent:       m.Spent,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

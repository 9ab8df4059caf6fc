package mapping

import (
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/models"
)

func ToModelProfile(d domain.Profile) models.Profile {
	return models.Profile{
		ProfileID:   d.ProfileID,
		UserID:      d.UserID,
		Name:        d.Name,
		ProfileType: string(d.Type),
		PhotoURL:    ToNullString(d.PhotoURL),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainProfile(m models.Profile) domain.Profile {
	return domain.Profile{
		ProfileID:   m.ProfileID,
		UserID:      m.UserID,
		Name:        m.Name,
		Type:        domain.ProfileType(m.ProfileType),
		PhotoURL:    FromNullString(m.PhotoURL),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

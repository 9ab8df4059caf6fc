package mapping

import (
	"database/sql"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:           d.UserID,
		Username:         d.Username,
		Email:            d.Email,
		Name:             d.Name,
		AuthProvider:     string(d.AuthProvider),
		ProviderUserID:   ToNullString(d.ProviderUserID),
		EmailVerified:    d.EmailVerified,
		TwoFactorEnabled: d.TwoFactorEnabled,
		TwoFactorSecret:  ToNullString(d.TwoFactorSecret),
		BackupCodeHashes: d.BackupCodeHashes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.PasswordHash != "" {
		m.PasswordHash = sql.NullString{String: d.PasswordHash, Valid: true}
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	if m.BackupCodeHashes == nil {
		m.BackupCodeHashes = []string{}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:           m.UserID,
		Username:         m.Username,
		Email:            m.Email,
		Name:             m.Name,
		PasswordHash:     m.PasswordHash.String,
		AuthProvider:     domain.AuthProvider(m.AuthProvider),
		ProviderUserID:   FromNullString(m.ProviderUserID),
		EmailVerified:    m.EmailVerified,
		TwoFactorEnabled: m.TwoFactorEnabled,
		TwoFactorSecret:  FromNullString(m.TwoFactorSecret),
		BackupCodeHashes: m.BackupCodeHashes,
		RefreshTokenHash: m.RefreshTokenHash.String,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}

package mapping

import (
	"database/sql"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/models"
)

// ToModelUser converts a domain User to a model User.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		PhoneNumber:  d.PhoneNumber,
		Name:         d.Name,
		Email:        nullString(d.Email),
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		AuthProvider: d.AuthProvider,
		ProviderID:   nullString(d.ProviderID),
		IsVerified:   d.IsVerified,
		AuditFields:  toModelAudit(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
	m.RefreshTokenHash = nullString(d.RefreshTokenHash)
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User.
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		PhoneNumber:  m.PhoneNumber,
		Name:         m.Name,
		Email:        fromNullString(m.Email),
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		AuthProvider: m.AuthProvider,
		ProviderID:   fromNullString(m.ProviderID),
		IsVerified:   m.IsVerified,
		AuditFields:  toDomainAudit(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
	d.RefreshTokenHash = fromNullString(m.RefreshTokenHash)
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}

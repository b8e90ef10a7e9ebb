package domain

import "time"

// AuthProvider identifies how a user authenticates.
const (
	ProviderLocal  = "LOCAL"
	ProviderGoogle = "GOOGLE"
)

// User represents a login identity. Students, teachers and staff each link 1:1
// to a User via their profile row.
type User struct {
	UserID       string `json:"userID"` // Primary key (UUID)
	PhoneNumber  string `json:"phoneNumber"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	AuthProvider string `json:"authProvider"`
	ProviderID   string `json:"-"` // Subject from the external provider, if any
	IsVerified   bool   `json:"isVerified"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete

	// Refresh token state (hash only; the raw token is never stored)
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo is the subset of the Google userinfo payload the service consumes.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

package dto

import "time"

// LoginRequest carries the phone-number/password credentials.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// LoginResponse returns the access token plus basic identity for the client.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
}

// RefreshResponse returns a fresh access token.
type RefreshResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GoogleCallbackRequest carries the ID token from the mobile Google sign-in flow.
type GoogleCallbackRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

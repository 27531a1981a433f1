package domain

import "time"

// TokenPair is what every successful authentication flow hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string        // always "Bearer"
	ExpiresIn    time.Duration // access token lifetime
	TenantID     string        // active tenant bound into both tokens
}

// RefreshToken models the stored refresh token record. The raw token value is
// never stored, only its fingerprint.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // base64url SHA-256 fingerprint
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

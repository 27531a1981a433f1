package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims is the payload of both access and refresh tokens. Subject carries the
// user id and TenantID the tenant the token acts as.
type Claims struct {
	jwt.RegisteredClaims

	TenantID string `json:"tenantId"`
}

// NewClaims builds claims for subject acting inside tenantID, valid for ttl
// from now.
func NewClaims(subject, tenantID, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TenantID: tenantID,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. Two tokens
// minted for the same user in the same second still differ because of it.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry checks exp against now. A token without exp is rejected.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

// ValidateSubject ensures both identity fields are present.
func (c *Claims) ValidateSubject() error {
	if c.Subject == "" || c.TenantID == "" {
		return ErrInvalidClaim
	}
	return nil
}

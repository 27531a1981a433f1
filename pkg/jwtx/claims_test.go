package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/tenantry/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	c := jwtx.NewClaims("user-1", "tenant-1", "tenantry", time.Minute, now)

	require.Equal(t, "user-1", c.Subject)
	require.Equal(t, "tenant-1", c.TenantID)
	require.Equal(t, "tenantry", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time.UTC())
	require.Equal(t, now.Add(time.Minute), c.ExpiresAt.Time.UTC())
	require.NotEmpty(t, c.ID)

	// Same inputs, same second: jti keeps them apart.
	require.NotEqual(t, c.ID, jwtx.NewClaims("user-1", "tenant-1", "tenantry", time.Minute, now).ID)
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "tenantry"}}

	require.NoError(t, c.ValidateIssuer("tenantry"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("other"), jwtx.ErrIssuer)
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute))}}
		require.NoError(t, c.ValidateExpiry(now))
	})

	t.Run("expired", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}}
		require.ErrorIs(t, c.ValidateExpiry(now), jwtx.ErrExpired)
	})

	t.Run("missing exp", func(t *testing.T) {
		c := &jwtx.Claims{}
		require.ErrorIs(t, c.ValidateExpiry(now), jwtx.ErrInvalidClaim)
	})
}

func TestValidateSubject(t *testing.T) {
	require.NoError(t, (&jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}, TenantID: "t"}).ValidateSubject())
	require.ErrorIs(t, (&jwtx.Claims{TenantID: "t"}).ValidateSubject(), jwtx.ErrInvalidClaim)
	require.ErrorIs(t, (&jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}).ValidateSubject(), jwtx.ErrInvalidClaim)
}

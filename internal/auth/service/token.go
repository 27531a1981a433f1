package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/pkg/cryptox"
	"github.com/aussiebroadwan/tenantry/pkg/idx"
	"github.com/aussiebroadwan/tenantry/pkg/jwtx"
	"github.com/aussiebroadwan/tenantry/pkg/slogx"
)

// TokenService mints and verifies access/refresh pairs. Both tokens carry the
// same claims but are signed with different secrets, so neither can stand in
// for the other.
type TokenService struct {
	Store store.Store

	AccessSigner    jwtx.Signer
	AccessVerifier  jwtx.Verifier
	RefreshSigner   jwtx.Signer
	RefreshVerifier jwtx.Verifier

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// TokenSecrets holds the two HMAC secrets of a TokenService.
type TokenSecrets struct {
	Access  []byte
	Refresh []byte
}

// ErrSameSecrets is returned when access and refresh secrets are identical.
var ErrSameSecrets = errors.New("service: access and refresh secrets must differ")

// NewTokenService builds HS256 signers and verifiers from secrets. Zero TTLs
// fall back to the jwtx defaults; a nil now means time.Now.
func NewTokenService(
	st store.Store,
	secrets TokenSecrets,
	issuer string,
	accessTTL, refreshTTL time.Duration,
	now func() time.Time,
) (*TokenService, error) {
	if string(secrets.Access) == string(secrets.Refresh) {
		return nil, ErrSameSecrets
	}
	if now == nil {
		now = time.Now
	}
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}

	accessSigner, err := jwtx.NewSignerHS256(secrets.Access)
	if err != nil {
		return nil, fmt.Errorf("access signer: %w", err)
	}
	refreshSigner, err := jwtx.NewSignerHS256(secrets.Refresh)
	if err != nil {
		return nil, fmt.Errorf("refresh signer: %w", err)
	}
	accessVerifier, err := jwtx.NewVerifierHS256(secrets.Access, issuer)
	if err != nil {
		return nil, fmt.Errorf("access verifier: %w", err)
	}
	refreshVerifier, err := jwtx.NewVerifierHS256(secrets.Refresh, issuer)
	if err != nil {
		return nil, fmt.Errorf("refresh verifier: %w", err)
	}
	accessVerifier.Now = now
	refreshVerifier.Now = now

	return &TokenService{
		Store:           st,
		AccessSigner:    accessSigner,
		AccessVerifier:  accessVerifier,
		RefreshSigner:   refreshSigner,
		RefreshVerifier: refreshVerifier,
		Issuer:          issuer,
		AccessTTL:       accessTTL,
		RefreshTTL:      refreshTTL,
		Now:             now,
	}, nil
}

func (s *TokenService) now() time.Time { return nowUTC(s.Now) }

// IssueTokenPair mints a pair for userID acting as tenantID and persists the
// refresh token's fingerprint. If persistence fails no tokens are returned.
func (s *TokenService) IssueTokenPair(ctx context.Context, userID, tenantID string) (domain.TokenPair, error) {
	return s.issueTokenPair(ctx, s.Store, userID, tenantID)
}

// issueTokenPair is IssueTokenPair against st, which may be a transaction.
func (s *TokenService) issueTokenPair(ctx context.Context, st store.Store, userID, tenantID string) (domain.TokenPair, error) {
	now := s.now()

	access, err := s.AccessSigner.Sign(jwtx.NewClaims(userID, tenantID, s.Issuer, s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.RefreshSigner.Sign(jwtx.NewClaims(userID, tenantID, s.Issuer, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	rt := domain.RefreshToken{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(refresh),
		ExpiresAt: now.Add(s.RefreshTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return domain.TokenPair{}, fmt.Errorf("persist refresh token: %w", err)
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
		TenantID:     tenantID,
	}, nil
}

// VerifyAccessToken checks signature, issuer and expiry of an access token.
// Every failure is ErrInvalidToken.
func (s *TokenService) VerifyAccessToken(token string) (jwtx.Claims, error) {
	claims, err := s.AccessVerifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefreshToken is VerifyAccessToken for refresh tokens.
func (s *TokenService) VerifyRefreshToken(token string) (jwtx.Claims, error) {
	claims, err := s.RefreshVerifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// RevokeRefreshToken revokes a single refresh token by its raw value.
// Returns store.ErrNotFound when no unrevoked token matches.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, raw string) error {
	return s.Store.RefreshTokens().RevokeRefreshToken(ctx, cryptox.FingerprintToken(raw))
}

// RevokeAllForUser revokes every refresh token of a user.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userID string) (int64, error) {
	n, err := s.Store.RefreshTokens().RevokeAllUserRefreshTokens(ctx, userID)
	if err != nil {
		return 0, err
	}
	slogx.FromContext(ctx).Info("revoked refresh tokens",
		slog.String("user_id", userID),
		slog.Int64("count", n),
	)
	return n, nil
}

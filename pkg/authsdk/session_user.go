package authsdk

import (
	"context"
	"net/http"
)

// Me returns the caller's profile and active tenant.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := s.call(ctx, http.MethodGet, "/v1/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial profile update.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserResponse, error) {
	var out UserResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/me", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword replaces the caller's password. Every refresh token of the
// user, including this session's, is revoked by the server.
func (s *Session) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return s.call(ctx, http.MethodPost, "/v1/me/password", req, nil, http.StatusNoContent)
}

// LogoutAll revokes every refresh token of the caller.
func (s *Session) LogoutAll(ctx context.Context) (*LogoutAllResponse, error) {
	var out LogoutAllResponse
	if err := s.call(ctx, http.MethodPost, "/v1/auth/logout-all", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SwitchTenant re-binds the session to another tenant the caller belongs to.
// The session adopts the returned tokens.
func (s *Session) SwitchTenant(ctx context.Context, tenantID string) (*SwitchTenantResponse, error) {
	var out SwitchTenantResponse
	err := s.call(ctx, http.MethodPost, "/v1/auth/switch-tenant", SwitchTenantRequest{TenantID: tenantID}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.setTokens(&out.Tokens)
	s.mu.Unlock()

	return &out, nil
}

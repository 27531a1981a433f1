package authsdk

import (
	"context"
	"net/http"
)

// Register creates a user and returns its profile, tenant, role and tokens.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.postJSON(ctx, "/v1/auth/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges email and password for a token pair.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.postJSON(ctx, "/v1/auth/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked by the server and cannot be used again.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.postJSON(ctx, "/v1/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes a refresh token. The server reports success for any input.
func (c *SDKClient) Logout(ctx context.Context, refreshToken string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.postJSON(ctx, "/v1/auth/logout", LogoutRequest{RefreshToken: refreshToken}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvitation redeems an invitation token.
func (c *SDKClient) AcceptInvitation(ctx context.Context, req AcceptInvitationRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.postJSON(ctx, "/v1/invitations/accept", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

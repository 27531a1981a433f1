package http

import (
	"net/http"

	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/httpx"
)

// AuthHandler serves the credential flows under /v1/auth and invitation
// acceptance.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create a user. Without tenantId a personal workspace is created and the user owns it;
//	@Description	with tenantId the user joins that tenant as MEMBER.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"registration"
//	@Success		201		{object}	authsdk.AuthResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		404		{object}	authsdk.ErrorResponse	"tenant_not_found"
//	@Failure		409		{object}	authsdk.ErrorResponse	"user_already_exists"
//	@Failure		429		{object}	authsdk.ErrorResponse
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !bind(w, r, &req) {
		return
	}

	res, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		TenantID:  req.TenantID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAuthResponse(res))
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchange email and password for a token pair bound to the user's oldest tenant.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"credentials"
//	@Success		200		{object}	authsdk.TokenResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid_credentials"
//	@Failure		403		{object}	authsdk.ErrorResponse	"no_tenant_access"
//	@Failure		429		{object}	authsdk.ErrorResponse
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !bind(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleRefresh godoc
//
//	@Summary		Refresh
//	@Description	Exchange a refresh token for a new pair. The presented token is revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	true	"refresh token"
//	@Success		200		{object}	authsdk.TokenResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid_refresh_token"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RefreshRequest
	if !bind(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Revoke a refresh token. Always answers 200 with the same body.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LogoutRequest	false	"refresh token"
//	@Success		200		{object}	authsdk.MessageResponse
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LogoutRequest
	// A body that does not decode is treated as an empty token.
	_ = httpx.DecodeJSON(w, r, &req)

	msg := h.AuthService.Logout(r.Context(), req.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: msg})
}

// HandleLogoutAll godoc
//
//	@Summary		Logout everywhere
//	@Description	Revoke every refresh token of the caller.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.LogoutAllResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Router			/v1/auth/logout-all [post].
func (h *AuthHandler) HandleLogoutAll(w http.ResponseWriter, r *http.Request) {
	p := principal(r)

	n, err := h.AuthService.LogoutAll(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.LogoutAllResponse{Revoked: n})
}

// HandleSwitchTenant godoc
//
//	@Summary		Switch tenant
//	@Description	Issue a pair for another tenant the caller belongs to.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.SwitchTenantRequest	true	"target tenant"
//	@Success		200		{object}	authsdk.SwitchTenantResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		401		{object}	authsdk.ErrorResponse
//	@Failure		403		{object}	authsdk.ErrorResponse	"no_tenant_access"
//	@Router			/v1/auth/switch-tenant [post].
func (h *AuthHandler) HandleSwitchTenant(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SwitchTenantRequest
	if !bind(w, r, &req) {
		return
	}
	if req.TenantID == "" {
		authsdk.NewValidationError(map[string]string{"tenantId": "required"}).WriteError(w)
		return
	}

	sess, err := h.AuthService.SwitchTenant(r.Context(), principal(r), req.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.SwitchTenantResponse{
		Tenant: toTenantResponse(sess.Tenant),
		Role:   sess.Role.String(),
		Tokens: toTokenResponse(sess.Tokens),
	})
}

// HandleAcceptInvitation godoc
//
//	@Summary		Accept invitation
//	@Description	Redeem an invitation token. A password is required when no account exists for the invited email.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.AcceptInvitationRequest	true	"invitation token"
//	@Success		200		{object}	authsdk.AuthResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		404		{object}	authsdk.ErrorResponse	"invitation_not_found"
//	@Failure		412		{object}	authsdk.ErrorResponse	"invitation_expired, invitation_already_accepted, password_required"
//	@Router			/v1/invitations/accept [post].
func (h *AuthHandler) HandleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req authsdk.AcceptInvitationRequest
	if !bind(w, r, &req) {
		return
	}

	res, err := h.AuthService.AcceptInvitation(r.Context(), service.AcceptInvitationInput{
		Token:     req.Token,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAuthResponse(res))
}

func toAuthResponse(res service.AuthResult) authsdk.AuthResponse {
	return authsdk.AuthResponse{
		User:   toUserResponse(res.User),
		Tenant: toTenantResponse(res.Tenant),
		Role:   res.Role.String(),
		Tokens: toTokenResponse(res.Tokens),
	}
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/httpx"
)

type MeHandler struct {
	UserService *service.UserService
}

// HandleGet godoc
//
//	@Summary		Current user
//	@Description	The caller's profile together with the tenant the token acts as and their role there.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.MeResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Router			/v1/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	prof, err := h.UserService.GetProfile(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{
		User:   toUserResponse(prof.User),
		Tenant: toTenantResponse(prof.Tenant),
		Role:   prof.Role.String(),
	})
}

// HandleUpdate godoc
//
//	@Summary		Update profile
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.UpdateProfileRequest	true	"fields to change"
//	@Success		200		{object}	authsdk.UserResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		401		{object}	authsdk.ErrorResponse
//	@Router			/v1/me [patch].
func (h *MeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UpdateProfileRequest
	if !bind(w, r, &req) {
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(), principal(r), domain.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	Verify the current password and set a new one. Every refresh token of the user is revoked.
//	@Tags			Users
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	authsdk.ChangePasswordRequest	true	"current and new password"
//	@Success		204
//	@Failure		400	{object}	authsdk.ErrorResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid_credentials"
//	@Router			/v1/me/password [post].
func (h *MeHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ChangePasswordRequest
	if !bind(w, r, &req) {
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), principal(r), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

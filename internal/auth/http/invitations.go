package http

import (
	"net/http"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/httpx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Create invitation
//	@Description	Invite an email address into the active tenant as ADMIN or MEMBER. The token is only returned here.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.CreateInvitationRequest	true	"invitee"
//	@Success		201		{object}	authsdk.InvitationResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		403		{object}	authsdk.ErrorResponse
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CreateInvitationRequest
	if !bind(w, r, &req) {
		return
	}

	inv, token, err := h.InvitationService.CreateInvitation(r.Context(), principal(r), req.Email, domain.Role(req.Role))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := toInvitationResponse(inv)
	out.Token = token
	httpx.WriteJSON(w, http.StatusCreated, out)
}

// HandleList godoc
//
//	@Summary		List pending invitations
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.ListInvitationsResponse
//	@Failure		403	{object}	authsdk.ErrorResponse
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	invs, err := h.InvitationService.ListPending(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := authsdk.ListInvitationsResponse{Invitations: make([]authsdk.InvitationResponse, 0, len(invs))}
	for _, inv := range invs {
		out.Invitations = append(out.Invitations, toInvitationResponse(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRevoke godoc
//
//	@Summary		Revoke invitation
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Param			id	path	string	true	"invitation id"
//	@Success		204
//	@Failure		403	{object}	authsdk.ErrorResponse
//	@Failure		404	{object}	authsdk.ErrorResponse	"invitation_not_found"
//	@Router			/v1/invitations/{id} [delete].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.InvitationService.Revoke(r.Context(), principal(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/httpx"
)

// TenantsHandler serves the caller's tenant list, the active tenant and its
// members.
type TenantsHandler struct {
	TenantService *service.TenantService
}

// HandleList godoc
//
//	@Summary		My tenants
//	@Description	Every tenant the caller belongs to with their role, oldest membership first.
//	@Tags			Tenants
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.ListTenantsResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Router			/v1/tenants [get].
func (h *TenantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.TenantService.ListForUser(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := authsdk.ListTenantsResponse{Tenants: make([]authsdk.TenantMembershipResponse, 0, len(tenants))}
	for _, t := range tenants {
		out.Tenants = append(out.Tenants, toTenantMembershipResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create tenant
//	@Description	Create a tenant owned by the caller. The caller's tokens stay bound to their current tenant.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.CreateTenantRequest	true	"tenant"
//	@Success		201		{object}	authsdk.TenantMembershipResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		409		{object}	authsdk.ErrorResponse	"tenant_slug_taken"
//	@Router			/v1/tenants [post].
func (h *TenantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CreateTenantRequest
	if !bind(w, r, &req) {
		return
	}

	t, err := h.TenantService.CreateTenant(r.Context(), principal(r), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTenantMembershipResponse(t))
}

// HandleGet godoc
//
//	@Summary		Active tenant
//	@Tags			Tenants
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.TenantResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Router			/v1/tenant [get].
func (h *TenantsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.TenantService.GetTenant(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTenantResponse(t))
}

// HandleUpdate godoc
//
//	@Summary		Rename tenant
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.UpdateTenantRequest	true	"fields to change"
//	@Success		200		{object}	authsdk.TenantResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		403		{object}	authsdk.ErrorResponse
//	@Router			/v1/tenant [patch].
func (h *TenantsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UpdateTenantRequest
	if !bind(w, r, &req) {
		return
	}

	t, err := h.TenantService.UpdateTenant(r.Context(), principal(r), domain.TenantUpdate{Name: req.Name})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTenantResponse(t))
}

// HandleDelete godoc
//
//	@Summary		Delete tenant
//	@Description	Delete the active tenant with its memberships, invitations and items. OWNER only.
//	@Tags			Tenants
//	@Security		BearerAuth
//	@Success		204
//	@Failure		403	{object}	authsdk.ErrorResponse
//	@Router			/v1/tenant [delete].
func (h *TenantsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TenantService.DeleteTenant(r.Context(), principal(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListMembers godoc
//
//	@Summary		List members
//	@Tags			Members
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int	false	"page number, from 1"
//	@Param			limit	query		int	false	"page size, 1..100"
//	@Success		200		{object}	authsdk.ListMembersResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Router			/v1/tenant/members [get].
func (h *TenantsHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	n, limit, ok := page(w, r)
	if !ok {
		return
	}

	pg := domain.NewPage(n, limit)
	members, err := h.TenantService.ListMembers(r.Context(), principal(r), pg)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := authsdk.ListMembersResponse{
		Members: make([]authsdk.MemberResponse, 0, len(members)),
		Page:    pg.Number,
		Limit:   pg.Limit,
	}
	for _, m := range members {
		out.Members = append(out.Members, toMemberResponse(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateMemberRole godoc
//
//	@Summary		Change member role
//	@Description	Set a member's role to ADMIN or MEMBER. The OWNER cannot be changed.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userID	path		string							true	"member user id"
//	@Param			request	body		authsdk.UpdateMemberRoleRequest	true	"new role"
//	@Success		200		{object}	authsdk.MemberResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		403		{object}	authsdk.ErrorResponse	"forbidden, owner_immutable"
//	@Failure		404		{object}	authsdk.ErrorResponse	"member_not_found"
//	@Router			/v1/tenant/members/{userID} [patch].
func (h *TenantsHandler) HandleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UpdateMemberRoleRequest
	if !bind(w, r, &req) {
		return
	}

	m, err := h.TenantService.UpdateMemberRole(r.Context(), principal(r), r.PathValue("userID"), domain.Role(req.Role))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(m))
}

// HandleRemoveMember godoc
//
//	@Summary		Remove member
//	@Tags			Members
//	@Security		BearerAuth
//	@Param			userID	path	string	true	"member user id"
//	@Success		204
//	@Failure		403	{object}	authsdk.ErrorResponse	"forbidden, owner_immutable"
//	@Failure		404	{object}	authsdk.ErrorResponse	"member_not_found"
//	@Router			/v1/tenant/members/{userID} [delete].
func (h *TenantsHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := h.TenantService.RemoveMember(r.Context(), principal(r), r.PathValue("userID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

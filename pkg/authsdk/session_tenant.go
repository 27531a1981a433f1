package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListTenants lists every tenant the caller belongs to.
func (s *Session) ListTenants(ctx context.Context) (*ListTenantsResponse, error) {
	var out ListTenantsResponse
	if err := s.call(ctx, http.MethodGet, "/v1/tenants", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTenant creates a tenant owned by the caller. The session stays bound
// to its current tenant; use SwitchTenant to act as the new one.
func (s *Session) CreateTenant(ctx context.Context, req CreateTenantRequest) (*TenantMembershipResponse, error) {
	var out TenantMembershipResponse
	if err := s.call(ctx, http.MethodPost, "/v1/tenants", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTenant returns the active tenant.
func (s *Session) GetTenant(ctx context.Context) (*TenantResponse, error) {
	var out TenantResponse
	if err := s.call(ctx, http.MethodGet, "/v1/tenant", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTenant renames the active tenant. Requires OWNER or ADMIN.
func (s *Session) UpdateTenant(ctx context.Context, req UpdateTenantRequest) (*TenantResponse, error) {
	var out TenantResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/tenant", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTenant deletes the active tenant and everything scoped to it.
// Requires OWNER.
func (s *Session) DeleteTenant(ctx context.Context) error {
	return s.call(ctx, http.MethodDelete, "/v1/tenant", nil, nil, http.StatusNoContent)
}

// ListMembers returns one page of the active tenant's members.
func (s *Session) ListMembers(ctx context.Context, page, limit int) (*ListMembersResponse, error) {
	var out ListMembersResponse
	if err := s.call(ctx, http.MethodGet, "/v1/tenant/members"+pageQuery(page, limit), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMemberRole changes a member's role. Requires OWNER or ADMIN.
func (s *Session) UpdateMemberRole(ctx context.Context, userID string, req UpdateMemberRoleRequest) (*MemberResponse, error) {
	var out MemberResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/tenant/members/"+url.PathEscape(userID), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveMember removes a member from the active tenant. Requires OWNER or ADMIN.
func (s *Session) RemoveMember(ctx context.Context, userID string) error {
	return s.call(ctx, http.MethodDelete, "/v1/tenant/members/"+url.PathEscape(userID), nil, nil, http.StatusNoContent)
}

func pageQuery(page, limit int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

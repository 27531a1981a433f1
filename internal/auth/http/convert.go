package http

import (
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
)

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toTokenResponse(p domain.TokenPair) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    int(p.ExpiresIn.Seconds()),
		TenantID:     p.TenantID,
	}
}

func toUserResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: timestamp(u.CreatedAt),
		UpdatedAt: timestamp(u.UpdatedAt),
	}
}

func toTenantResponse(t domain.Tenant) authsdk.TenantResponse {
	return authsdk.TenantResponse{
		ID:        t.ID,
		Slug:      t.Slug,
		Name:      t.Name,
		CreatedAt: timestamp(t.CreatedAt),
		UpdatedAt: timestamp(t.UpdatedAt),
	}
}

func toTenantMembershipResponse(t domain.TenantWithRole) authsdk.TenantMembershipResponse {
	return authsdk.TenantMembershipResponse{
		Tenant:   toTenantResponse(t.Tenant),
		Role:     t.Role.String(),
		JoinedAt: timestamp(t.JoinedAt),
	}
}

func toMemberResponse(m domain.Member) authsdk.MemberResponse {
	return authsdk.MemberResponse{
		User:     toUserResponse(m.User),
		Role:     m.Role.String(),
		JoinedAt: timestamp(m.JoinedAt),
	}
}

func toInvitationResponse(inv domain.Invitation) authsdk.InvitationResponse {
	return authsdk.InvitationResponse{
		ID:        inv.ID,
		TenantID:  inv.TenantID,
		Email:     inv.Email,
		Role:      inv.Role.String(),
		InvitedBy: inv.InvitedBy,
		ExpiresAt: timestamp(inv.ExpiresAt),
		CreatedAt: timestamp(inv.CreatedAt),
	}
}

func toItemResponse(it domain.Item) authsdk.ItemResponse {
	return authsdk.ItemResponse{
		ID:          it.ID,
		TenantID:    it.TenantID,
		Name:        it.Name,
		Description: it.Description,
		CreatedBy:   it.CreatedBy,
		CreatedAt:   timestamp(it.CreatedAt),
		UpdatedAt:   timestamp(it.UpdatedAt),
	}
}

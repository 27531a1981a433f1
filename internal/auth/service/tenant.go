package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/pkg/slogx"
)

type TenantService struct {
	Store store.Store
	Now   func() time.Time
}

// CreateTenant creates a tenant owned by the caller. The caller's tokens stay
// bound to their current tenant.
func (s *TenantService) CreateTenant(ctx context.Context, p Principal, name string) (domain.TenantWithRole, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.TenantWithRole{}, ErrInvalidRequest.WithMessage("tenant name is required")
	}

	now := nowUTC(s.Now)
	var tenant domain.Tenant
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		tenant, err = createWorkspace(ctx, tx, name, slugPrefix(name), now)
		if err != nil {
			return err
		}
		return tx.Memberships().CreateMembership(ctx, domain.Membership{
			UserID:    p.UserID,
			TenantID:  tenant.ID,
			Role:      domain.RoleOwner,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return domain.TenantWithRole{}, err
	}

	slogx.FromContext(ctx).Info("tenant created", slog.String("tenant_id", tenant.ID), slog.String("slug", tenant.Slug))
	return domain.TenantWithRole{Tenant: tenant, Role: domain.RoleOwner, JoinedAt: now}, nil
}

// GetTenant returns the caller's active tenant.
func (s *TenantService) GetTenant(ctx context.Context, p Principal) (domain.Tenant, error) {
	t, err := s.Store.Tenants().GetTenantByID(ctx, p.TenantID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Tenant{}, ErrTenantNotFound
	}
	return t, err
}

// ListForUser lists every tenant the caller belongs to, oldest membership first.
func (s *TenantService) ListForUser(ctx context.Context, p Principal) ([]domain.TenantWithRole, error) {
	return s.Store.Tenants().ListTenantsForUser(ctx, p.UserID)
}

func (s *TenantService) UpdateTenant(ctx context.Context, p Principal, upd domain.TenantUpdate) (domain.Tenant, error) {
	if upd.Name == nil {
		return domain.Tenant{}, ErrInvalidRequest.WithMessage("nothing to update")
	}
	name := strings.TrimSpace(*upd.Name)
	if name == "" {
		return domain.Tenant{}, ErrInvalidRequest.WithMessage("tenant name is required")
	}
	upd.Name = &name

	t, err := s.Store.Tenants().UpdateTenant(ctx, p.TenantID, upd)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Tenant{}, ErrTenantNotFound
	}
	return t, err
}

// DeleteTenant removes the caller's active tenant together with its
// memberships, invitations and items. Tokens bound to it stop working on the
// next request because the membership is gone.
func (s *TenantService) DeleteTenant(ctx context.Context, p Principal) error {
	err := s.Store.Tenants().DeleteTenant(ctx, p.TenantID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTenantNotFound
	}
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("tenant deleted", slog.String("tenant_id", p.TenantID))
	return nil
}

func (s *TenantService) ListMembers(ctx context.Context, p Principal, page domain.Page) ([]domain.Member, error) {
	return s.Store.Memberships().ListMembers(ctx, p.TenantID, page)
}

// UpdateMemberRole sets a member's role to ADMIN or MEMBER. The OWNER can
// neither be changed nor created this way.
func (s *TenantService) UpdateMemberRole(ctx context.Context, p Principal, userID string, role domain.Role) (domain.Member, error) {
	if !role.Assignable() {
		return domain.Member{}, ErrInvalidRole
	}

	m, err := s.targetMembership(ctx, p, userID)
	if err != nil {
		return domain.Member{}, err
	}

	if err := s.Store.Memberships().UpdateMembershipRole(ctx, userID, p.TenantID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Member{}, ErrMemberNotFound
		}
		return domain.Member{}, fmt.Errorf("update role: %w", err)
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("lookup user: %w", err)
	}

	slogx.FromContext(ctx).Info("member role updated",
		slog.String("member_id", userID),
		slog.String("from", m.Role.String()),
		slog.String("to", role.String()),
	)
	return domain.Member{User: u, Role: role, JoinedAt: m.CreatedAt}, nil
}

// RemoveMember removes a non-owner from the caller's tenant.
func (s *TenantService) RemoveMember(ctx context.Context, p Principal, userID string) error {
	if _, err := s.targetMembership(ctx, p, userID); err != nil {
		return err
	}

	if err := s.Store.Memberships().DeleteMembership(ctx, userID, p.TenantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("delete membership: %w", err)
	}

	slogx.FromContext(ctx).Info("member removed", slog.String("member_id", userID))
	return nil
}

// targetMembership loads the membership a role change or removal acts on and
// refuses OWNER targets.
func (s *TenantService) targetMembership(ctx context.Context, p Principal, userID string) (domain.Membership, error) {
	m, err := s.Store.Memberships().GetMembership(ctx, userID, p.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrMemberNotFound
		}
		return domain.Membership{}, fmt.Errorf("lookup membership: %w", err)
	}
	if m.Role == domain.RoleOwner {
		return domain.Membership{}, ErrOwnerImmutable
	}
	return m, nil
}

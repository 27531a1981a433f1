package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
)

// Principal is the resolved caller of a request: who they are, which tenant
// they act as, and their role there right now.
type Principal struct {
	UserID   string
	TenantID string
	Role     domain.Role
}

// Operation names a role-gated action.
type Operation string

const (
	OpTenantRead   Operation = "tenant.read"
	OpTenantUpdate Operation = "tenant.update"
	OpTenantDelete Operation = "tenant.delete"

	OpInvitationCreate Operation = "invitation.create"
	OpInvitationList   Operation = "invitation.list"
	OpInvitationRevoke Operation = "invitation.revoke"

	OpMemberList       Operation = "member.list"
	OpMemberUpdateRole Operation = "member.update_role"
	OpMemberRemove     Operation = "member.remove"

	OpItemCreate Operation = "item.create"
	OpItemRead   Operation = "item.read"
	OpItemList   Operation = "item.list"
	OpItemUpdate Operation = "item.update"
	OpItemDelete Operation = "item.delete"
)

// Policy maps each operation to the roles allowed to perform it. Operations
// missing from the map are denied.
type Policy map[Operation][]domain.Role

// DefaultPolicy returns a fresh copy of the built-in policy table.
func DefaultPolicy() Policy {
	all := []domain.Role{domain.RoleOwner, domain.RoleAdmin, domain.RoleMember}
	managers := []domain.Role{domain.RoleOwner, domain.RoleAdmin}

	return Policy{
		OpTenantRead:   all,
		OpTenantUpdate: managers,
		OpTenantDelete: {domain.RoleOwner},

		OpInvitationCreate: managers,
		OpInvitationList:   managers,
		OpInvitationRevoke: managers,

		OpMemberList:       all,
		OpMemberUpdateRole: managers,
		OpMemberRemove:     managers,

		OpItemCreate: all,
		OpItemRead:   all,
		OpItemList:   all,
		OpItemUpdate: all,
		OpItemDelete: all,
	}
}

// Allows reports whether role may perform op.
func (p Policy) Allows(role domain.Role, op Operation) bool {
	roles, ok := p[op]
	return ok && role.In(roles)
}

// AccessControl resolves bearer tokens into principals and gates operations.
// Membership is re-read on every call, so a removed member loses access on
// their next request.
type AccessControl struct {
	Store  store.Store
	Tokens *TokenService
	Policy Policy
}

// Authenticate validates rawToken and re-resolves the user and membership it
// names.
func (a *AccessControl) Authenticate(ctx context.Context, rawToken string) (Principal, error) {
	if rawToken == "" {
		return Principal{}, ErrUnauthenticated
	}

	claims, err := a.Tokens.VerifyAccessToken(rawToken)
	if err != nil {
		return Principal{}, err
	}

	if _, err := a.Store.Users().GetUserByID(ctx, claims.Subject); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Principal{}, ErrUnauthenticated
		}
		return Principal{}, fmt.Errorf("lookup user: %w", err)
	}

	m, err := a.Store.Memberships().GetMembership(ctx, claims.Subject, claims.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Principal{}, ErrUnauthenticated
		}
		return Principal{}, fmt.Errorf("lookup membership: %w", err)
	}

	return Principal{UserID: m.UserID, TenantID: m.TenantID, Role: m.Role}, nil
}

// Authorize fails with ErrForbidden unless the policy lets p's role perform op.
func (a *AccessControl) Authorize(p Principal, op Operation) error {
	if !a.Policy.Allows(p.Role, op) {
		return ErrForbidden
	}
	return nil
}

type principalKey struct{}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal attached by the access
// middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

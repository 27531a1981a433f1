package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
)

func TestCreateTenant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	ada := env.register(t, "ada@example.com")
	p := env.principal(t, ada.Tokens)

	created, err := env.tenants.CreateTenant(ctx, p, "  Acme Corp ")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", created.Name)
	require.Regexp(t, `^acme-corp-[0-9a-f]{8}$`, created.Slug)
	require.Equal(t, domain.RoleOwner, created.Role)

	list, err := env.tenants.ListForUser(ctx, p)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, ada.Tenant.ID, list[0].ID)

	// The caller's tokens are still bound to the first tenant.
	require.Equal(t, ada.Tenant.ID, env.principal(t, ada.Tokens).TenantID)

	_, err = env.tenants.CreateTenant(ctx, p, "   ")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUpdateTenant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	ada := env.register(t, "ada@example.com")
	p := env.principal(t, ada.Tokens)

	name := "Renamed"
	updated, err := env.tenants.UpdateTenant(ctx, p, domain.TenantUpdate{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, ada.Tenant.Slug, updated.Slug)

	_, err = env.tenants.UpdateTenant(ctx, p, domain.TenantUpdate{})
	require.ErrorIs(t, err, ErrInvalidRequest)

	blank := " "
	_, err = env.tenants.UpdateTenant(ctx, p, domain.TenantUpdate{Name: &blank})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestDeleteTenantCascades(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	ada := env.register(t, "ada@example.com")
	p := env.principal(t, ada.Tokens)

	_, err := env.items.CreateItem(ctx, p, "doomed", "")
	require.NoError(t, err)
	inv, _ := env.invite(t, p, "bob@example.com", domain.RoleMember)

	require.NoError(t, env.tenants.DeleteTenant(ctx, p))

	_, err = env.store.Tenants().GetTenantByID(ctx, ada.Tenant.ID)
	require.Error(t, err)
	_, err = env.store.Invitations().GetInvitationByTokenHash(ctx, inv.TokenHash)
	require.Error(t, err)

	_, err = env.access.Authenticate(ctx, ada.Tokens.AccessToken)
	require.ErrorIs(t, err, ErrUnauthenticated)

	require.ErrorIs(t, env.tenants.DeleteTenant(ctx, p), ErrTenantNotFound)
}

func TestMemberManagement(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	ownerP := env.principal(t, owner.Tokens)

	_, token := env.invite(t, ownerP, "admin@example.com", domain.RoleAdmin)
	admin, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token, Password: testPassword})
	require.NoError(t, err)
	adminP := env.principal(t, admin.Tokens)

	_, token = env.invite(t, ownerP, "member@example.com", domain.RoleMember)
	member, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token, Password: testPassword})
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		members, err := env.tenants.ListMembers(ctx, ownerP, domain.NewPage(1, 10))
		require.NoError(t, err)
		require.Len(t, members, 3)
		require.Equal(t, owner.User.ID, members[0].User.ID)
		require.Equal(t, domain.RoleOwner, members[0].Role)

		second, err := env.tenants.ListMembers(ctx, ownerP, domain.NewPage(2, 2))
		require.NoError(t, err)
		require.Len(t, second, 1)
	})

	t.Run("owner is immutable", func(t *testing.T) {
		_, err := env.tenants.UpdateMemberRole(ctx, adminP, owner.User.ID, domain.RoleMember)
		require.ErrorIs(t, err, ErrOwnerImmutable)
		require.Equal(t, KindForbidden, KindOf(err))

		require.ErrorIs(t, env.tenants.RemoveMember(ctx, adminP, owner.User.ID), ErrOwnerImmutable)
	})

	t.Run("owner cannot be assigned", func(t *testing.T) {
		_, err := env.tenants.UpdateMemberRole(ctx, ownerP, member.User.ID, domain.RoleOwner)
		require.ErrorIs(t, err, ErrInvalidRole)

		_, _, err = env.invitations.CreateInvitation(ctx, ownerP, "x@example.com", domain.RoleOwner)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("promote", func(t *testing.T) {
		m, err := env.tenants.UpdateMemberRole(ctx, adminP, member.User.ID, domain.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, m.Role)
		require.Equal(t, member.User.ID, m.User.ID)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := env.tenants.UpdateMemberRole(ctx, ownerP, "01HZZZZZZZZZZZZZZZZZZZZZZZ", domain.RoleAdmin)
		require.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, env.tenants.RemoveMember(ctx, ownerP, member.User.ID))
		require.ErrorIs(t, env.tenants.RemoveMember(ctx, ownerP, member.User.ID), ErrMemberNotFound)

		owners, err := env.store.Memberships().CountOwners(ctx, owner.Tenant.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), owners)
	})
}

func TestInvitationListAndRevoke(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	p := env.principal(t, owner.Tokens)

	first, _ := env.invite(t, p, "one@example.com", domain.RoleMember)
	env.clock.Advance(time.Second)
	second, token := env.invite(t, p, "two@example.com", domain.RoleAdmin)

	pending, err := env.invitations.ListPending(ctx, p)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, second.ID, pending[0].ID)

	require.NoError(t, env.invitations.Revoke(ctx, p, first.ID))
	require.ErrorIs(t, env.invitations.Revoke(ctx, p, first.ID), ErrInvitationNotFound)

	_, err = env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token, Password: testPassword})
	require.NoError(t, err)

	pending, err = env.invitations.ListPending(ctx, p)
	require.NoError(t, err)
	require.Empty(t, pending)

	t.Run("other tenants cannot revoke", func(t *testing.T) {
		inv, _ := env.invite(t, p, "three@example.com", domain.RoleMember)
		stranger := env.register(t, "stranger@example.com")

		err := env.invitations.Revoke(ctx, env.principal(t, stranger.Tokens), inv.ID)
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, _, err := env.invitations.CreateInvitation(ctx, p, "not an email", domain.RoleMember)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

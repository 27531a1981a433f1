package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/pkg/cryptox"
)

func TestRegisterCreatesOwnedWorkspace(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.auth.Register(ctx, RegisterInput{
		Email:     "  Ada.Lovelace@Example.com ",
		Password:  testPassword,
		FirstName: "Ada",
	})
	require.NoError(t, err)

	require.Equal(t, "ada.lovelace@example.com", res.User.Email)
	require.Equal(t, domain.RoleOwner, res.Role)
	require.Equal(t, "Ada's Workspace", res.Tenant.Name)
	require.Regexp(t, `^ada-lovelace-[0-9a-f]{8}$`, res.Tenant.Slug)
	require.Equal(t, res.Tenant.ID, res.Tokens.TenantID)
	require.Equal(t, "Bearer", res.Tokens.TokenType)

	owners, err := env.store.Memberships().CountOwners(ctx, res.Tenant.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), owners)

	t.Run("password is stored as bcrypt", func(t *testing.T) {
		u, err := env.store.Users().GetUserByID(ctx, res.User.ID)
		require.NoError(t, err)
		require.NotEqual(t, testPassword, u.PasswordHash)
		require.True(t, strings.HasPrefix(u.PasswordHash, "$2"))
	})

	t.Run("only the refresh token fingerprint is stored", func(t *testing.T) {
		rt, err := env.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(res.Tokens.RefreshToken))
		require.NoError(t, err)
		require.Equal(t, res.User.ID, rt.UserID)
		require.NotEqual(t, res.Tokens.RefreshToken, rt.TokenHash)
		require.Equal(t, env.clock.Now().Add(env.tokens.RefreshTTL).Unix(), rt.ExpiresAt.Unix())
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := env.auth.Register(ctx, RegisterInput{Email: "ada.lovelace@example.com", Password: testPassword})
		require.ErrorIs(t, err, ErrUserAlreadyExists)
		require.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("access token resolves to owner", func(t *testing.T) {
		p := env.principal(t, res.Tokens)
		require.Equal(t, Principal{UserID: res.User.ID, TenantID: res.Tenant.ID, Role: domain.RoleOwner}, p)
	})
}

func TestRegisterWorkspaceNameFallsBackToLocalPart(t *testing.T) {
	env := newTestEnv(t)

	res := env.register(t, "grace@example.com")
	require.Equal(t, "grace's Workspace", res.Tenant.Name)
}

func TestRegisterIntoExistingTenant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")

	res, err := env.auth.Register(ctx, RegisterInput{
		Email:    "member@example.com",
		Password: testPassword,
		TenantID: owner.Tenant.ID,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, res.Role)
	require.Equal(t, owner.Tenant.ID, res.Tenant.ID)

	t.Run("unknown tenant rolls back the user", func(t *testing.T) {
		_, err := env.auth.Register(ctx, RegisterInput{
			Email:    "ghost@example.com",
			Password: testPassword,
			TenantID: "01HZZZZZZZZZZZZZZZZZZZZZZZ",
		})
		require.ErrorIs(t, err, ErrTenantNotFound)
		require.Equal(t, KindNotFound, KindOf(err))

		_, err = env.store.Users().GetUserByEmail(ctx, "ghost@example.com")
		require.Error(t, err)
	})
}

func TestRegisterValidatesInput(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.Register(ctx, RegisterInput{Email: "a@example.com", Password: "password"})
	require.ErrorIs(t, err, ErrInvalidPassword)
	require.Equal(t, KindInvalidArgument, KindOf(err))

	_, err = env.auth.Register(ctx, RegisterInput{Email: "nope", Password: testPassword})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	ada := env.register(t, "ada@example.com")

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.auth.Login(ctx, "ada@example.com", "Wr0ng-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.Equal(t, KindUnauthenticated, KindOf(err))
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		_, err := env.auth.Login(ctx, "nobody@example.com", testPassword)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("bytes past the bcrypt limit still count", func(t *testing.T) {
		long := "Aa1!" + strings.Repeat("x", 68)
		_, err := env.auth.Register(ctx, RegisterInput{Email: "long@example.com", Password: long})
		require.NoError(t, err)

		_, err = env.auth.Login(ctx, "long@example.com", long+"-wrong-suffix")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = env.auth.Login(ctx, "long@example.com", long)
		require.NoError(t, err)
	})

	t.Run("email is case insensitive", func(t *testing.T) {
		pair, err := env.auth.Login(ctx, "ADA@example.com", testPassword)
		require.NoError(t, err)
		require.Equal(t, ada.Tenant.ID, pair.TenantID)
	})

	t.Run("binds to the oldest membership", func(t *testing.T) {
		other := env.register(t, "other@example.com")
		env.clock.Advance(time.Second)

		_, token := env.invite(t, env.principal(t, other.Tokens), "ada@example.com", domain.RoleAdmin)
		_, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token})
		require.NoError(t, err)

		pair, err := env.auth.Login(ctx, "ada@example.com", testPassword)
		require.NoError(t, err)
		require.Equal(t, ada.Tenant.ID, pair.TenantID)
	})

	t.Run("no memberships", func(t *testing.T) {
		lonely := env.register(t, "lonely@example.com")
		require.NoError(t, env.store.Tenants().DeleteTenant(ctx, lonely.Tenant.ID))

		_, err := env.auth.Login(ctx, "lonely@example.com", testPassword)
		require.ErrorIs(t, err, ErrNoTenantAccess)
		require.Equal(t, KindForbidden, KindOf(err))
	})
}

func TestRefreshRotates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res := env.register(t, "ada@example.com")

	next, err := env.auth.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, res.Tokens.RefreshToken, next.RefreshToken)
	require.Equal(t, res.Tenant.ID, next.TenantID)

	_, err = env.auth.Refresh(ctx, res.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = env.auth.Refresh(ctx, next.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejects(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res := env.register(t, "ada@example.com")

	t.Run("garbage", func(t *testing.T) {
		_, err := env.auth.Refresh(ctx, "not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("access token presented as refresh", func(t *testing.T) {
		_, err := env.auth.Refresh(ctx, res.Tokens.AccessToken)
		require.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("after logout", func(t *testing.T) {
		pair, err := env.auth.Login(ctx, "ada@example.com", testPassword)
		require.NoError(t, err)

		require.Equal(t, LogoutMessage, env.auth.Logout(ctx, pair.RefreshToken))

		_, err = env.auth.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("membership removed", func(t *testing.T) {
		owner := env.register(t, "owner@example.com")
		_, token := env.invite(t, env.principal(t, owner.Tokens), "mallory@example.com", domain.RoleMember)
		mallory, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token, Password: testPassword})
		require.NoError(t, err)

		require.NoError(t, env.tenants.RemoveMember(ctx, env.principal(t, owner.Tokens), mallory.User.ID))

		_, err = env.auth.Refresh(ctx, mallory.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("expired", func(t *testing.T) {
		pair, err := env.auth.Login(ctx, "ada@example.com", testPassword)
		require.NoError(t, err)

		env.clock.Advance(env.tokens.RefreshTTL + time.Minute)

		_, err = env.auth.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res := env.register(t, "ada@example.com")

	for _, token := range []string{"", "garbage", res.Tokens.AccessToken, res.Tokens.RefreshToken, res.Tokens.RefreshToken} {
		require.Equal(t, LogoutMessage, env.auth.Logout(ctx, token))
	}
}

func TestLogoutAll(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res := env.register(t, "ada@example.com")
	second, err := env.auth.Login(ctx, "ada@example.com", testPassword)
	require.NoError(t, err)

	n, err := env.auth.LogoutAll(ctx, env.principal(t, res.Tokens))
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	for _, token := range []string{res.Tokens.RefreshToken, second.RefreshToken} {
		_, err := env.auth.Refresh(ctx, token)
		require.ErrorIs(t, err, ErrInvalidRefreshToken)
	}
}

func TestAcceptInvitationCreatesUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	inv, token := env.invite(t, env.principal(t, owner.Tokens), "Grace@Example.com", domain.RoleMember)

	require.Equal(t, "grace@example.com", inv.Email)
	require.WithinDuration(t, env.clock.Now().Add(24*time.Hour), inv.ExpiresAt, 0)
	require.NotEqual(t, token, inv.TokenHash)

	_, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token})
	require.ErrorIs(t, err, ErrPasswordRequired)
	require.Equal(t, KindPreconditionFailed, KindOf(err))

	res, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{
		Token:     token,
		Password:  testPassword,
		FirstName: "Grace",
	})
	require.NoError(t, err)
	require.Equal(t, "grace@example.com", res.User.Email)
	require.Equal(t, "Grace", res.User.FirstName)
	require.Equal(t, domain.RoleMember, res.Role)
	require.Equal(t, owner.Tenant.ID, res.Tenant.ID)
	require.Equal(t, owner.Tenant.ID, res.Tokens.TenantID)

	p := env.principal(t, res.Tokens)
	require.Equal(t, domain.RoleMember, p.Role)

	_, err = env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token, Password: testPassword})
	require.ErrorIs(t, err, ErrInvitationAlreadyAccepted)

	stored, err := env.store.Invitations().GetInvitationByTokenHash(ctx, inv.TokenHash)
	require.NoError(t, err)
	require.True(t, stored.Accepted)
	require.Equal(t, res.User.ID, stored.AcceptedBy)
}

func TestAcceptInvitationExistingUserKeepsOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	ownerP := env.principal(t, owner.Tokens)

	// Inviting the owner into their own tenant must not demote them.
	_, token := env.invite(t, ownerP, "owner@example.com", domain.RoleMember)
	res, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token})
	require.NoError(t, err)
	require.Equal(t, domain.RoleOwner, res.Role)
	require.Equal(t, owner.User.ID, res.User.ID)
}

func TestAcceptInvitationFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	p := env.principal(t, owner.Tokens)

	t.Run("unknown token", func(t *testing.T) {
		_, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: "nope"})
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("weak password", func(t *testing.T) {
		_, token := env.invite(t, p, "weak@example.com", domain.RoleMember)
		_, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token, Password: "short"})
		require.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("expired after 25 hours", func(t *testing.T) {
		_, token := env.invite(t, p, "late@example.com", domain.RoleMember)
		env.clock.Advance(25 * time.Hour)

		_, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token, Password: testPassword})
		require.ErrorIs(t, err, ErrInvitationExpired)
		require.Equal(t, KindPreconditionFailed, KindOf(err))
	})
}

func TestAcceptInvitationConcurrently(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	_, token := env.invite(t, env.principal(t, owner.Tokens), "race@example.com", domain.RoleAdmin)

	const n = 4
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token, Password: testPassword})
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, ErrInvitationAlreadyAccepted)
	}
	require.Equal(t, 1, ok)

	u, err := env.store.Users().GetUserByEmail(ctx, "race@example.com")
	require.NoError(t, err)
	m, err := env.store.Memberships().GetMembership(ctx, u.ID, owner.Tenant.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, m.Role)
}

func TestSwitchTenant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	ada := env.register(t, "ada@example.com")
	grace := env.register(t, "grace@example.com")

	_, token := env.invite(t, env.principal(t, grace.Tokens), "ada@example.com", domain.RoleAdmin)
	_, err := env.auth.AcceptInvitation(ctx, AcceptInvitationInput{Token: token})
	require.NoError(t, err)

	adaP := env.principal(t, ada.Tokens)
	sess, err := env.auth.SwitchTenant(ctx, adaP, grace.Tenant.ID)
	require.NoError(t, err)
	require.Equal(t, grace.Tenant.ID, sess.Tenant.ID)
	require.Equal(t, domain.RoleAdmin, sess.Role)

	switched := env.principal(t, sess.Tokens)
	require.Equal(t, grace.Tenant.ID, switched.TenantID)
	require.Equal(t, domain.RoleAdmin, switched.Role)

	t.Run("tenant without membership", func(t *testing.T) {
		stranger := env.register(t, "stranger@example.com")
		_, err := env.auth.SwitchTenant(ctx, adaP, stranger.Tenant.ID)
		require.ErrorIs(t, err, ErrNoTenantAccess)
	})
}

func TestSlugPrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ada@example.com":          "ada",
		"ada.lovelace+x@ex.com":    "ada-lovelace-x",
		"--Weird__Name--":          "weird-name",
		"!!!@example.com":          "workspace",
		"Acme Corp":                "acme-corp",
		strings.Repeat("a", 60):    strings.Repeat("a", 40),
		"trailing " + "dash-@x.io": "trailing-dash",
	}
	for in, want := range tests {
		require.Equal(t, want, slugPrefix(in), in)
	}
}

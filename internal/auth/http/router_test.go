package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/cryptox"
)

const testPassword = "Sup3r-secret"

type testServer struct {
	*httptest.Server
	client *authsdk.SDKClient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := service.NewTokenService(st, service.TokenSecrets{
		Access:  []byte(strings.Repeat("a", 32)),
		Refresh: []byte(strings.Repeat("r", 32)),
	}, "tenantry-test", 15*time.Minute, time.Hour, nil)
	require.NoError(t, err)

	hasher := cryptox.NewHasher(bcrypt.MinCost, 4)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter("test", st, logger, []string{"https://app.example.com"})
	r.Access = &service.AccessControl{Store: st, Tokens: tokens, Policy: service.DefaultPolicy()}
	r.AuthService = &service.AuthService{Store: st, Tokens: tokens, Hasher: hasher}
	r.UserService = &service.UserService{Store: st, Hasher: hasher}
	r.TenantService = &service.TenantService{Store: st}
	r.InvitationService = &service.InvitationService{Store: st}
	r.ItemService = &service.ItemService{Store: st}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, client: authsdk.NewSDKClient(srv.URL)}
}

// register creates a user with their own workspace and returns a session.
func (s *testServer) register(t *testing.T, email string) (*authsdk.AuthResponse, *authsdk.Session) {
	t.Helper()

	res, err := s.client.Register(context.Background(), authsdk.RegisterRequest{Email: email, Password: testPassword})
	require.NoError(t, err)
	return res, s.client.NewSessionFromTokens(res.Tokens)
}

// do sends a raw JSON request and decodes any error body.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, authsdk.ErrorResponse) {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var errBody authsdk.ErrorResponse
	if resp.StatusCode >= 400 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	}
	return resp, errBody
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

func TestRegisterAndMe(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	res, sess := srv.register(t, "ada@example.com")
	require.Equal(t, "OWNER", res.Role)
	require.Equal(t, "Bearer", res.Tokens.TokenType)
	require.Equal(t, 900, res.Tokens.ExpiresIn)
	require.Equal(t, res.Tenant.ID, res.Tokens.TenantID)

	me, err := sess.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", me.User.Email)
	require.Equal(t, res.Tenant.ID, me.Tenant.ID)
	require.Equal(t, "OWNER", me.Role)

	_, err = srv.client.Register(ctx, authsdk.RegisterRequest{Email: "ADA@example.com", Password: testPassword})
	requireAPIError(t, err, http.StatusConflict, authsdk.ErrorCodeUserAlreadyExists)
}

func TestRequestValidation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("weak password", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodPost, "/v1/auth/register", "", authsdk.RegisterRequest{
			Email:    "ada@example.com",
			Password: "password",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, authsdk.ErrorCodeValidation, body.Error)
		require.Contains(t, body.Details, "password")
	})

	t.Run("unknown field", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodPost, "/v1/auth/login", "", `{"email":"a@example.com","password":"x","admin":true}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, authsdk.ErrorCodeInvalidRequest, body.Error)
	})

	t.Run("empty body", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodPost, "/v1/auth/refresh", "", nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, authsdk.ErrorCodeInvalidRequest, body.Error)
	})

	t.Run("bad page", func(t *testing.T) {
		res, _ := srv.register(t, "pager@example.com")
		resp, body := srv.do(t, http.MethodGet, "/v1/items?page=0", res.Tokens.AccessToken, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, authsdk.ErrorCodeValidation, body.Error)
	})
}

func TestUnauthenticated(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.do(t, http.MethodGet, "/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, authsdk.ErrorCodeUnauthenticated, body.Error)
	require.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	resp, body = srv.do(t, http.MethodGet, "/v1/me", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, authsdk.ErrorCodeInvalidToken, body.Error)
	require.True(t, strings.HasPrefix(resp.Header.Get("WWW-Authenticate"), `Bearer error="invalid_token"`))
}

func TestLoginAndRefresh(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	srv.register(t, "ada@example.com")

	_, err := srv.client.Login(ctx, authsdk.LoginRequest{Email: "ada@example.com", Password: "Wr0ng-password"})
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCredentials)

	pair, err := srv.client.Login(ctx, authsdk.LoginRequest{Email: "ada@example.com", Password: testPassword})
	require.NoError(t, err)

	next, err := srv.client.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, pair.TenantID, next.TenantID)

	_, err = srv.client.Refresh(ctx, pair.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidRefreshToken)

	msg, err := srv.client.Logout(ctx, next.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, service.LogoutMessage, msg.Message)

	_, err = srv.client.Refresh(ctx, next.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidRefreshToken)
}

func TestLogoutIgnoresInput(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []any{nil, "garbage", `{"refreshToken":"nope"}`} {
		resp, _ := srv.do(t, http.MethodPost, "/v1/auth/logout", "", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out authsdk.MessageResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Equal(t, service.LogoutMessage, out.Message)
	}
}

func TestInvitationFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	owner, ownerSess := srv.register(t, "owner@example.com")

	inv, err := ownerSess.CreateInvitation(ctx, authsdk.CreateInvitationRequest{Email: "grace@example.com", Role: "MEMBER"})
	require.NoError(t, err)
	require.NotEmpty(t, inv.Token)
	require.Equal(t, owner.Tenant.ID, inv.TenantID)

	list, err := ownerSess.ListInvitations(ctx)
	require.NoError(t, err)
	require.Len(t, list.Invitations, 1)
	require.Empty(t, list.Invitations[0].Token)

	_, err = srv.client.AcceptInvitation(ctx, authsdk.AcceptInvitationRequest{Token: inv.Token})
	requireAPIError(t, err, http.StatusPreconditionFailed, authsdk.ErrorCodePasswordRequired)

	grace, err := srv.client.AcceptInvitation(ctx, authsdk.AcceptInvitationRequest{Token: inv.Token, Password: testPassword, FirstName: "Grace"})
	require.NoError(t, err)
	require.Equal(t, "MEMBER", grace.Role)
	require.Equal(t, owner.Tenant.ID, grace.Tokens.TenantID)

	_, err = srv.client.AcceptInvitation(ctx, authsdk.AcceptInvitationRequest{Token: inv.Token, Password: testPassword})
	requireAPIError(t, err, http.StatusPreconditionFailed, authsdk.ErrorCodeInvitationAlreadyAccepted)

	graceSess := srv.client.NewSessionFromTokens(grace.Tokens)

	t.Run("member cannot manage", func(t *testing.T) {
		_, err := graceSess.CreateInvitation(ctx, authsdk.CreateInvitationRequest{Email: "x@example.com", Role: "MEMBER"})
		requireAPIError(t, err, http.StatusForbidden, authsdk.ErrorCodeForbidden)

		err = graceSess.DeleteTenant(ctx)
		requireAPIError(t, err, http.StatusForbidden, authsdk.ErrorCodeForbidden)
	})

	t.Run("members list", func(t *testing.T) {
		members, err := graceSess.ListMembers(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, members.Members, 2)
		require.Equal(t, 1, members.Page)
		require.Equal(t, 10, members.Limit)
	})

	t.Run("owner is immutable", func(t *testing.T) {
		_, err := ownerSess.UpdateMemberRole(ctx, owner.User.ID, authsdk.UpdateMemberRoleRequest{Role: "MEMBER"})
		requireAPIError(t, err, http.StatusForbidden, authsdk.ErrorCodeOwnerImmutable)
	})

	t.Run("promotion takes effect immediately", func(t *testing.T) {
		m, err := ownerSess.UpdateMemberRole(ctx, grace.User.ID, authsdk.UpdateMemberRoleRequest{Role: "ADMIN"})
		require.NoError(t, err)
		require.Equal(t, "ADMIN", m.Role)

		_, err = graceSess.ListInvitations(ctx)
		require.NoError(t, err)
	})

	t.Run("removal locks the member out", func(t *testing.T) {
		require.NoError(t, ownerSess.RemoveMember(ctx, grace.User.ID))

		_, err := graceSess.Me(ctx)
		requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthenticated)
	})
}

func TestItemsAcrossTenants(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, ada := srv.register(t, "ada@example.com")
	_, bob := srv.register(t, "bob@example.com")

	it, err := ada.CreateItem(ctx, authsdk.CreateItemRequest{Name: "Ledger", Description: "q3"})
	require.NoError(t, err)

	got, err := ada.GetItem(ctx, it.ID)
	require.NoError(t, err)
	require.Equal(t, "Ledger", got.Name)

	_, err = bob.GetItem(ctx, it.ID)
	requireAPIError(t, err, http.StatusNotFound, authsdk.ErrorCodeItemNotFound)

	err = bob.DeleteItem(ctx, it.ID)
	requireAPIError(t, err, http.StatusNotFound, authsdk.ErrorCodeItemNotFound)

	name := "Renamed"
	updated, err := ada.UpdateItem(ctx, it.ID, authsdk.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "q3", updated.Description)

	list, err := bob.ListItems(ctx, 0, 0)
	require.NoError(t, err)
	require.Empty(t, list.Items)

	require.NoError(t, ada.DeleteItem(ctx, it.ID))
}

func TestTenantsAndSwitch(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	ada, sess := srv.register(t, "ada@example.com")

	created, err := sess.CreateTenant(ctx, authsdk.CreateTenantRequest{Name: "Acme"})
	require.NoError(t, err)
	require.Equal(t, "OWNER", created.Role)

	tenants, err := sess.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants.Tenants, 2)

	cur, err := sess.GetTenant(ctx)
	require.NoError(t, err)
	require.Equal(t, ada.Tenant.ID, cur.ID)

	switched, err := sess.SwitchTenant(ctx, created.Tenant.ID)
	require.NoError(t, err)
	require.Equal(t, created.Tenant.ID, switched.Tenant.ID)
	require.Equal(t, created.Tenant.ID, sess.TenantID())

	cur, err = sess.GetTenant(ctx)
	require.NoError(t, err)
	require.Equal(t, "Acme", cur.Name)

	require.NoError(t, sess.DeleteTenant(ctx))

	_, err = sess.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthenticated)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	res, sess := srv.register(t, "ada@example.com")

	err := sess.ChangePassword(ctx, authsdk.ChangePasswordRequest{CurrentPassword: "Wr0ng-password", NewPassword: "N3w-password"})
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCredentials)

	require.NoError(t, sess.ChangePassword(ctx, authsdk.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "N3w-password"}))

	_, err = srv.client.Refresh(ctx, res.Tokens.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidRefreshToken)
}

func TestHealthAndFallbacks(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	live, err := srv.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := srv.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)

	resp, body := srv.do(t, http.MethodGet, "/v1/nope", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, authsdk.ErrorCodeNotFound, body.Error)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestLoginRateLimited(t *testing.T) {
	srv := newTestServer(t)

	var last *http.Response
	for range 10 {
		last, _ = srv.do(t, http.MethodPost, "/v1/auth/login", "", authsdk.LoginRequest{Email: "a@example.com", Password: "x"})
		if last.StatusCode == http.StatusTooManyRequests {
			break
		}
	}
	require.Equal(t, http.StatusTooManyRequests, last.StatusCode)
	require.NotEmpty(t, last.Header.Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/me", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "authorization")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	tests := map[service.Kind]int{
		service.KindConflict:           http.StatusConflict,
		service.KindNotFound:           http.StatusNotFound,
		service.KindUnauthenticated:    http.StatusUnauthorized,
		service.KindForbidden:          http.StatusForbidden,
		service.KindPreconditionFailed: http.StatusPreconditionFailed,
		service.KindInvalidArgument:    http.StatusBadRequest,
		service.KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range tests {
		require.Equal(t, want, statusOf(kind), kind.String())
	}
}

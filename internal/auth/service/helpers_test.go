package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/tenantry/pkg/cryptox"
)

const testPassword = "Sup3r-secret"

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	store       *sqlite.Store
	clock       *testClock
	tokens      *TokenService
	auth        *AuthService
	access      *AccessControl
	invitations *InvitationService
	tenants     *TenantService
	users       *UserService
	items       *ItemService
	housekeep   *HousekeepingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &testClock{t: time.Now().UTC().Truncate(time.Second)}

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "auth.db")), sqlite.WithClock(clock.Now))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := NewTokenService(st, TokenSecrets{
		Access:  []byte(strings.Repeat("a", 32)),
		Refresh: []byte(strings.Repeat("r", 32)),
	}, "tenantry-test", 15*time.Minute, 30*24*time.Hour, clock.Now)
	require.NoError(t, err)

	hasher := cryptox.NewHasher(bcrypt.MinCost, 4)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	housekeep := NewHousekeepingService(st, logger, time.Hour)
	housekeep.Now = clock.Now

	return &testEnv{
		store:       st,
		clock:       clock,
		tokens:      tokens,
		auth:        &AuthService{Store: st, Tokens: tokens, Hasher: hasher, Now: clock.Now},
		access:      &AccessControl{Store: st, Tokens: tokens, Policy: DefaultPolicy()},
		invitations: &InvitationService{Store: st, Now: clock.Now},
		tenants:     &TenantService{Store: st, Now: clock.Now},
		users:       &UserService{Store: st, Hasher: hasher},
		items:       &ItemService{Store: st, Now: clock.Now},
		housekeep:   housekeep,
	}
}

// register creates a user with their own workspace.
func (e *testEnv) register(t *testing.T, email string) AuthResult {
	t.Helper()

	res, err := e.auth.Register(context.Background(), RegisterInput{Email: email, Password: testPassword})
	require.NoError(t, err)
	return res
}

// principal resolves an access token the way the HTTP middleware does.
func (e *testEnv) principal(t *testing.T, pair domain.TokenPair) Principal {
	t.Helper()

	p, err := e.access.Authenticate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	return p
}

// invite creates an invitation in p's tenant and returns the raw token.
func (e *testEnv) invite(t *testing.T, p Principal, email string, role domain.Role) (domain.Invitation, string) {
	t.Helper()

	inv, token, err := e.invitations.CreateInvitation(context.Background(), p, email, role)
	require.NoError(t, err)
	return inv, token
}

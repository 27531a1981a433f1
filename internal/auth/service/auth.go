package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/cryptox"
	"github.com/aussiebroadwan/tenantry/pkg/idx"
	"github.com/aussiebroadwan/tenantry/pkg/slogx"
)

// LogoutMessage is the body of every logout response.
const LogoutMessage = "logged out"

const (
	slugAttempts  = 5
	maxSlugPrefix = 40
)

// AuthService is the authentication core: it turns credentials into token
// pairs bound to exactly one tenant.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
	Hasher *cryptox.Hasher

	// Now defaults to time.Now.
	Now func() time.Time
}

// AuthResult is what register and invitation acceptance return.
type AuthResult struct {
	User   domain.User
	Tenant domain.Tenant
	Role   domain.Role
	Tokens domain.TokenPair
}

// TenantSession is a token pair together with the tenant it acts as.
type TenantSession struct {
	Tenant domain.Tenant
	Role   domain.Role
	Tokens domain.TokenPair
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string

	// TenantID joins an existing tenant as MEMBER instead of creating a
	// personal workspace.
	TenantID string
}

type AcceptInvitationInput struct {
	Token     string
	Password  string
	FirstName string
	LastName  string
}

func (s *AuthService) now() time.Time { return nowUTC(s.Now) }

// Register creates a user. Without a tenant id the user gets a new
// workspace and owns it; with one the user joins it as MEMBER. Tokens are
// issued in the same transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	email := authsdk.NormalizeEmail(in.Email)
	if err := authsdk.ValidateEmail(email); err != nil {
		return AuthResult{}, ErrInvalidRequest.WithMessage(err.Error())
	}
	if err := authsdk.ValidatePassword(in.Password); err != nil {
		return AuthResult{}, ErrInvalidPassword.WithMessage(err.Error())
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return AuthResult{}, ErrUserAlreadyExists
	case !errors.Is(err, store.ErrNotFound):
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.Hasher.Hash(ctx, in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var res AuthResult
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUserAlreadyExists
			}
			return fmt.Errorf("create user: %w", err)
		}

		var (
			tenant domain.Tenant
			role   domain.Role
			err    error
		)
		if in.TenantID != "" {
			tenant, err = tx.Tenants().GetTenantByID(ctx, in.TenantID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrTenantNotFound
				}
				return fmt.Errorf("get tenant: %w", err)
			}
			role = domain.RoleMember
		} else {
			tenant, err = createWorkspace(ctx, tx, workspaceName(user), slugPrefix(email), now)
			if err != nil {
				return err
			}
			role = domain.RoleOwner
		}

		if err := tx.Memberships().CreateMembership(ctx, domain.Membership{
			UserID:    user.ID,
			TenantID:  tenant.ID,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("create membership: %w", err)
		}

		pair, err := s.Tokens.issueTokenPair(ctx, tx, user.ID, tenant.ID)
		if err != nil {
			return err
		}

		res = AuthResult{User: user, Tenant: tenant, Role: role, Tokens: pair}
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("tenant_id", res.Tenant.ID),
		slog.String("role", res.Role.String()),
	)
	return res, nil
}

// Login checks email and password and issues a pair for the user's oldest
// membership.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	log := slogx.FromContext(ctx)
	email = authsdk.NormalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, fmt.Errorf("lookup user: %w", err)
		}
		// Same bcrypt cost as a real comparison.
		if err := s.Hasher.VerifyDummy(ctx, password); err != nil && !errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.TokenPair{}, err
		}
		log.Info("login failed", slog.String("reason", "unknown email"))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	if err := s.Hasher.Verify(ctx, password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login failed", slog.String("reason", "wrong password"), slog.String("user_id", user.ID))
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	memberships, err := s.Store.Memberships().ListMembershipsByUser(ctx, user.ID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return domain.TokenPair{}, ErrNoTenantAccess
	}

	return s.Tokens.IssueTokenPair(ctx, user.ID, memberships[0].TenantID)
}

// Refresh exchanges a refresh token for a new pair bound to the same tenant.
// The presented token is revoked in the same transaction, so it works once.
func (s *AuthService) Refresh(ctx context.Context, raw string) (domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	claims, err := s.Tokens.VerifyRefreshToken(raw)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidRefreshToken
	}

	hash := cryptox.FingerprintToken(raw)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefreshToken
		}
		return domain.TokenPair{}, fmt.Errorf("lookup refresh token: %w", err)
	}
	if rt.Revoked || s.now().After(rt.ExpiresAt) || rt.UserID != claims.Subject {
		log.Info("refresh rejected",
			slog.String("user_id", claims.Subject),
			slog.Bool("revoked", rt.Revoked),
		)
		return domain.TokenPair{}, ErrInvalidRefreshToken
	}

	if _, err := s.Store.Users().GetUserByID(ctx, claims.Subject); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefreshToken
		}
		return domain.TokenPair{}, fmt.Errorf("lookup user: %w", err)
	}
	if _, err := s.Store.Memberships().GetMembership(ctx, claims.Subject, claims.TenantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("refresh rejected: membership gone",
				slog.String("user_id", claims.Subject),
				slog.String("tenant_id", claims.TenantID),
			)
			return domain.TokenPair{}, ErrInvalidRefreshToken
		}
		return domain.TokenPair{}, fmt.Errorf("lookup membership: %w", err)
	}

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefreshToken
			}
			return fmt.Errorf("revoke refresh token: %w", err)
		}
		var err error
		pair, err = s.Tokens.issueTokenPair(ctx, tx, claims.Subject, claims.TenantID)
		return err
	})
	if err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// Logout revokes a refresh token. It reports the same message whatever
// happens so callers learn nothing about the token.
func (s *AuthService) Logout(ctx context.Context, raw string) string {
	if raw == "" {
		return LogoutMessage
	}
	if err := s.Tokens.RevokeRefreshToken(ctx, raw); err != nil {
		log := slogx.FromContext(ctx)
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("logout: token unknown or already revoked")
		} else {
			log.Warn("logout: revoke failed", slog.Any("error", err))
		}
	}
	return LogoutMessage
}

// LogoutAll revokes every refresh token of the caller.
func (s *AuthService) LogoutAll(ctx context.Context, p Principal) (int64, error) {
	return s.Tokens.RevokeAllForUser(ctx, p.UserID)
}

// AcceptInvitation redeems an invitation token. A user that does not exist
// yet is created, which requires a password. The invitation is marked
// accepted with a conditional update so only one of several concurrent
// calls succeeds.
func (s *AuthService) AcceptInvitation(ctx context.Context, in AcceptInvitationInput) (AuthResult, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(in.Token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrInvitationNotFound
		}
		return AuthResult{}, fmt.Errorf("lookup invitation: %w", err)
	}
	if inv.Accepted {
		return AuthResult{}, ErrInvitationAlreadyAccepted
	}
	if inv.Expired(now) {
		return AuthResult{}, ErrInvitationExpired
	}

	// Hash outside the transaction; bcrypt is slow and the write lock is not.
	var hash string
	_, err = s.Store.Users().GetUserByEmail(ctx, inv.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if in.Password == "" {
			return AuthResult{}, ErrPasswordRequired
		}
		if err := authsdk.ValidatePassword(in.Password); err != nil {
			return AuthResult{}, ErrInvalidPassword.WithMessage(err.Error())
		}
		if hash, err = s.Hasher.Hash(ctx, in.Password); err != nil {
			return AuthResult{}, fmt.Errorf("hash password: %w", err)
		}
	case err != nil:
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	var res AuthResult
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByEmail(ctx, inv.Email)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if hash == "" {
				// The user existed a moment ago and was deleted since.
				return ErrPasswordRequired
			}
			user = domain.User{
				ID:           idx.NewAt(now).String(),
				Email:        inv.Email,
				FirstName:    strings.TrimSpace(in.FirstName),
				LastName:     strings.TrimSpace(in.LastName),
				PasswordHash: hash,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
		case err != nil:
			return fmt.Errorf("lookup user: %w", err)
		}

		if err := tx.Invitations().MarkInvitationAccepted(ctx, inv.ID, user.ID); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrInvitationAlreadyAccepted
			}
			return fmt.Errorf("mark invitation accepted: %w", err)
		}

		if err := tx.Memberships().UpsertMembership(ctx, domain.Membership{
			UserID:    user.ID,
			TenantID:  inv.TenantID,
			Role:      inv.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("upsert membership: %w", err)
		}

		// An existing OWNER keeps their role, so read back what stuck.
		m, err := tx.Memberships().GetMembership(ctx, user.ID, inv.TenantID)
		if err != nil {
			return fmt.Errorf("read membership: %w", err)
		}
		tenant, err := tx.Tenants().GetTenantByID(ctx, inv.TenantID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTenantNotFound
			}
			return fmt.Errorf("get tenant: %w", err)
		}

		pair, err := s.Tokens.issueTokenPair(ctx, tx, user.ID, inv.TenantID)
		if err != nil {
			return err
		}

		res = AuthResult{User: user, Tenant: tenant, Role: m.Role, Tokens: pair}
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("user_id", res.User.ID),
		slog.String("tenant_id", res.Tenant.ID),
	)
	return res, nil
}

// SwitchTenant issues a pair for another tenant the caller belongs to.
func (s *AuthService) SwitchTenant(ctx context.Context, p Principal, tenantID string) (TenantSession, error) {
	m, err := s.Store.Memberships().GetMembership(ctx, p.UserID, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TenantSession{}, ErrNoTenantAccess
		}
		return TenantSession{}, fmt.Errorf("lookup membership: %w", err)
	}

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TenantSession{}, ErrNoTenantAccess
		}
		return TenantSession{}, fmt.Errorf("get tenant: %w", err)
	}

	pair, err := s.Tokens.IssueTokenPair(ctx, p.UserID, tenantID)
	if err != nil {
		return TenantSession{}, err
	}
	return TenantSession{Tenant: tenant, Role: m.Role, Tokens: pair}, nil
}

// createWorkspace inserts a tenant with a random slug suffix, retrying on the
// rare clash.
func createWorkspace(ctx context.Context, st store.Store, name, prefix string, now time.Time) (domain.Tenant, error) {
	for range slugAttempts {
		suffix, err := randomHex(4)
		if err != nil {
			return domain.Tenant{}, err
		}
		t := domain.Tenant{
			ID:        idx.NewAt(now).String(),
			Slug:      prefix + "-" + suffix,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = st.Tenants().CreateTenant(ctx, t)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return domain.Tenant{}, fmt.Errorf("create tenant: %w", err)
		}
	}
	return domain.Tenant{}, ErrTenantSlugTaken
}

// slugPrefix turns an email's local part (or any name) into lower-case
// [a-z0-9-] with no leading, trailing or repeated dashes.
func slugPrefix(s string) string {
	if local, _, ok := strings.Cut(s, "@"); ok {
		s = local
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= maxSlugPrefix {
			break
		}
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "workspace"
	}
	return out
}

func workspaceName(u domain.User) string {
	name := u.FirstName
	if name == "" {
		name, _, _ = strings.Cut(u.Email, "@")
	}
	return name + "'s Workspace"
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random: %w", err)
	}
	return hex.EncodeToString(b), nil
}

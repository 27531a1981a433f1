package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/cryptox"
	"github.com/aussiebroadwan/tenantry/pkg/slogx"
)

type UserService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
}

// Profile is the caller as seen from their active tenant.
type Profile struct {
	User   domain.User
	Tenant domain.Tenant
	Role   domain.Role
}

// GetProfile returns the caller's user record and active tenant.
func (s *UserService) GetProfile(ctx context.Context, p Principal) (Profile, error) {
	u, err := s.Store.Users().GetUserByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrUnauthenticated
		}
		return Profile{}, err
	}
	t, err := s.Store.Tenants().GetTenantByID(ctx, p.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrTenantNotFound
		}
		return Profile{}, err
	}
	return Profile{User: u, Tenant: t, Role: p.Role}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, p Principal, upd domain.UserUpdate) (domain.User, error) {
	if upd.IsEmpty() {
		return domain.User{}, ErrInvalidRequest.WithMessage("nothing to update")
	}
	upd.FirstName = trimPtr(upd.FirstName)
	upd.LastName = trimPtr(upd.LastName)

	u, err := s.Store.Users().UpdateUser(ctx, p.UserID, upd)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUnauthenticated
	}
	return u, err
}

// ChangePassword verifies the current password, stores the new one and
// revokes every refresh token of the user in the same transaction.
func (s *UserService) ChangePassword(ctx context.Context, p Principal, current, next string) error {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnauthenticated
		}
		return err
	}

	if err := s.Hasher.Verify(ctx, current, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("password change rejected", slog.String("reason", "wrong current password"))
			return ErrInvalidCredentials
		}
		return err
	}
	if err := authsdk.ValidatePassword(next); err != nil {
		return ErrInvalidPassword.WithMessage(err.Error())
	}

	hash, err := s.Hasher.Hash(ctx, next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var revoked int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		revoked, err = tx.RefreshTokens().RevokeAllUserRefreshTokens(ctx, u.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	log.Info("password changed", slog.Int64("revoked_refresh_tokens", revoked))
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/cryptox"
	"github.com/aussiebroadwan/tenantry/pkg/idx"
	"github.com/aussiebroadwan/tenantry/pkg/slogx"
)

type InvitationService struct {
	Store store.Store
	Now   func() time.Time
}

// CreateInvitation invites email into the caller's tenant with role. The raw
// token is returned once; only its fingerprint is stored.
func (s *InvitationService) CreateInvitation(
	ctx context.Context,
	p Principal,
	email string,
	role domain.Role,
) (domain.Invitation, string, error) {
	log := slogx.FromContext(ctx)

	if !role.Assignable() {
		log.Warn("attempted to create invitation with unassignable role",
			slog.String("role", role.String()),
		)
		return domain.Invitation{}, "", ErrInvalidRole
	}

	email = authsdk.NormalizeEmail(email)
	if err := authsdk.ValidateEmail(email); err != nil {
		return domain.Invitation{}, "", ErrInvalidRequest.WithMessage(err.Error())
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Invitation{}, "", err
	}

	now := nowUTC(s.Now)
	inv := domain.Invitation{
		ID:        idx.NewAt(now).String(),
		TenantID:  p.TenantID,
		Email:     email,
		TokenHash: cryptox.FingerprintToken(token),
		Role:      role,
		InvitedBy: p.UserID,
		ExpiresAt: now.Add(domain.InvitationTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		return domain.Invitation{}, "", fmt.Errorf("create invitation: %w", err)
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("tenant_id", inv.TenantID),
		slog.String("role", inv.Role.String()),
	)
	return inv, token, nil
}

// ListPending returns unaccepted, unexpired invitations of the caller's tenant.
func (s *InvitationService) ListPending(ctx context.Context, p Principal) ([]domain.Invitation, error) {
	return s.Store.Invitations().ListPendingInvitations(ctx, p.TenantID, nowUTC(s.Now))
}

// Revoke deletes a pending invitation of the caller's tenant.
func (s *InvitationService) Revoke(ctx context.Context, p Principal, invitationID string) error {
	err := s.Store.Invitations().DeleteInvitation(ctx, p.TenantID, invitationID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvitationNotFound
	}
	return err
}

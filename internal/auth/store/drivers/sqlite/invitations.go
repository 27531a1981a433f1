package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/internal/auth/store/drivers/sqlite/gen"
)

type invitationsRepo struct {
	q   *gen.Queries
	now func() time.Time
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		ID:        inv.ID,
		TenantID:  inv.TenantID,
		Email:     inv.Email,
		TokenHash: inv.TokenHash,
		Role:      string(inv.Role),
		InvitedBy: inv.InvitedBy,
		ExpiresAt: inv.ExpiresAt.UTC(),
		CreatedAt: inv.CreatedAt.UTC(),
		UpdatedAt: inv.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByTokenHash(ctx, hash)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) ListPendingInvitations(ctx context.Context, tenantID string, now time.Time) ([]domain.Invitation, error) {
	rows, err := r.q.ListPendingInvitations(ctx, gen.ListPendingInvitationsParams{
		TenantID:  tenantID,
		ExpiresAt: now.UTC(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapInvitation(row))
	}
	return out, nil
}

func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, invitationID, acceptedBy string) error {
	n, err := r.q.MarkInvitationAccepted(ctx, gen.MarkInvitationAcceptedParams{
		AcceptedBy: mapStringNull(acceptedBy),
		UpdatedAt:  r.now().UTC(),
		ID:         invitationID,
	})
	return mapAffected(n, err, store.ErrConflict)
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, tenantID, invitationID string) error {
	n, err := r.q.DeleteInvitation(ctx, gen.DeleteInvitationParams{
		ID:       invitationID,
		TenantID: tenantID,
	})
	return mapAffected(n, err, store.ErrNotFound)
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredInvitations(ctx, now.UTC())
}

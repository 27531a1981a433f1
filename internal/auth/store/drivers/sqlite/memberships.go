package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/internal/auth/store/drivers/sqlite/gen"
)

type membershipsRepo struct {
	q   *gen.Queries
	now func() time.Time
}

func (r *membershipsRepo) GetMembership(ctx context.Context, userID, tenantID string) (domain.Membership, error) {
	row, err := r.q.GetMembership(ctx, gen.GetMembershipParams{
		UserID:   userID,
		TenantID: tenantID,
	})
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return mapMembership(row), nil
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	err := r.q.CreateMembership(ctx, gen.CreateMembershipParams{
		UserID:    m.UserID,
		TenantID:  m.TenantID,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *membershipsRepo) UpsertMembership(ctx context.Context, m domain.Membership) error {
	err := r.q.UpsertMembership(ctx, gen.UpsertMembershipParams{
		UserID:    m.UserID,
		TenantID:  m.TenantID,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *membershipsRepo) UpdateMembershipRole(ctx context.Context, userID, tenantID string, role domain.Role) error {
	n, err := r.q.UpdateMembershipRole(ctx, gen.UpdateMembershipRoleParams{
		Role:      string(role),
		UpdatedAt: r.now().UTC(),
		UserID:    userID,
		TenantID:  tenantID,
	})
	return mapAffected(n, mapConstraint(err), store.ErrNotFound)
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, userID, tenantID string) error {
	n, err := r.q.DeleteMembership(ctx, gen.DeleteMembershipParams{
		UserID:   userID,
		TenantID: tenantID,
	})
	return mapAffected(n, err, store.ErrNotFound)
}

func (r *membershipsRepo) ListMembershipsByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	rows, err := r.q.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMembership(row))
	}
	return out, nil
}

func (r *membershipsRepo) ListMembers(ctx context.Context, tenantID string, page domain.Page) ([]domain.Member, error) {
	rows, err := r.q.ListMembers(ctx, gen.ListMembersParams{
		TenantID: tenantID,
		Limit:    int64(page.Limit),
		Offset:   int64(page.Offset()),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Member{
			User: domain.User{
				ID:        row.ID,
				Email:     row.Email,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				CreatedAt: row.CreatedAt.UTC(),
				UpdatedAt: row.UpdatedAt.UTC(),
			},
			Role:     domain.Role(row.Role),
			JoinedAt: row.JoinedAt.UTC(),
		})
	}
	return out, nil
}

func (r *membershipsRepo) CountOwners(ctx context.Context, tenantID string) (int64, error) {
	return r.q.CountOwners(ctx, tenantID)
}

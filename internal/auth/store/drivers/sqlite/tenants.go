package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/internal/auth/store/drivers/sqlite/gen"
)

type tenantsRepo struct {
	q   *gen.Queries
	now func() time.Time
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	row, err := r.q.GetTenantByID(ctx, id)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return mapTenant(row), nil
}

func (r *tenantsRepo) GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	row, err := r.q.GetTenantBySlug(ctx, slug)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return mapTenant(row), nil
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	err := r.q.CreateTenant(ctx, gen.CreateTenantParams{
		ID:        t.ID,
		Slug:      t.Slug,
		Name:      t.Name,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *tenantsRepo) UpdateTenant(ctx context.Context, tenantID string, upd domain.TenantUpdate) (domain.Tenant, error) {
	row, err := r.q.UpdateTenant(ctx, gen.UpdateTenantParams{
		Name:      mapOptionalString(upd.Name),
		UpdatedAt: r.now().UTC(),
		ID:        tenantID,
	})
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return mapTenant(row), nil
}

func (r *tenantsRepo) DeleteTenant(ctx context.Context, tenantID string) error {
	n, err := r.q.DeleteTenant(ctx, tenantID)
	return mapAffected(n, err, store.ErrNotFound)
}

func (r *tenantsRepo) ListTenantsForUser(ctx context.Context, userID string) ([]domain.TenantWithRole, error) {
	rows, err := r.q.ListTenantsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TenantWithRole, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TenantWithRole{
			Tenant: domain.Tenant{
				ID:        row.ID,
				Slug:      row.Slug,
				Name:      row.Name,
				CreatedAt: row.CreatedAt.UTC(),
				UpdatedAt: row.UpdatedAt.UTC(),
			},
			Role:     domain.Role(row.Role),
			JoinedAt: row.JoinedAt.UTC(),
		})
	}
	return out, nil
}

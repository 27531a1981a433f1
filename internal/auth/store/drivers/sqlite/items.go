package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/internal/auth/store/drivers/sqlite/gen"
)

// itemsRepo scopes every query by tenant id; an item id from another tenant
// behaves exactly like a missing one.
type itemsRepo struct {
	q   *gen.Queries
	now func() time.Time
}

func (r *itemsRepo) CreateItem(ctx context.Context, it domain.Item) error {
	err := r.q.CreateItem(ctx, gen.CreateItemParams{
		ID:          it.ID,
		TenantID:    it.TenantID,
		Name:        it.Name,
		Description: it.Description,
		CreatedBy:   it.CreatedBy,
		CreatedAt:   it.CreatedAt.UTC(),
		UpdatedAt:   it.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *itemsRepo) GetItem(ctx context.Context, tenantID, itemID string) (domain.Item, error) {
	row, err := r.q.GetItem(ctx, gen.GetItemParams{TenantID: tenantID, ID: itemID})
	if err != nil {
		return domain.Item{}, mapNotFound(err)
	}
	return mapItem(row), nil
}

func (r *itemsRepo) ListItems(ctx context.Context, tenantID string, page domain.Page) ([]domain.Item, error) {
	rows, err := r.q.ListItems(ctx, gen.ListItemsParams{
		TenantID: tenantID,
		Limit:    int64(page.Limit),
		Offset:   int64(page.Offset()),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapItem(row))
	}
	return out, nil
}

func (r *itemsRepo) UpdateItem(ctx context.Context, tenantID, itemID string, upd domain.ItemUpdate) (domain.Item, error) {
	row, err := r.q.UpdateItem(ctx, gen.UpdateItemParams{
		Name:        mapOptionalString(upd.Name),
		Description: mapOptionalString(upd.Description),
		UpdatedAt:   r.now().UTC(),
		TenantID:    tenantID,
		ID:          itemID,
	})
	if err != nil {
		return domain.Item{}, mapNotFound(err)
	}
	return mapItem(row), nil
}

func (r *itemsRepo) DeleteItem(ctx context.Context, tenantID, itemID string) error {
	n, err := r.q.DeleteItem(ctx, gen.DeleteItemParams{TenantID: tenantID, ID: itemID})
	return mapAffected(n, err, store.ErrNotFound)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/pkg/idx"
)

// ItemService is the reference tenant-scoped resource. Every call is scoped
// to the principal's tenant; rows of other tenants read as not found.
type ItemService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ItemService) CreateItem(ctx context.Context, p Principal, name, description string) (domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Item{}, ErrInvalidRequest.WithMessage("item name is required")
	}

	now := nowUTC(s.Now)
	it := domain.Item{
		ID:          idx.NewAt(now).String(),
		TenantID:    p.TenantID,
		Name:        name,
		Description: description,
		CreatedBy:   p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Items().CreateItem(ctx, it); err != nil {
		return domain.Item{}, err
	}
	return it, nil
}

func (s *ItemService) GetItem(ctx context.Context, p Principal, id string) (domain.Item, error) {
	it, err := s.Store.Items().GetItem(ctx, p.TenantID, id)
	return it, mapItemErr(err)
}

func (s *ItemService) ListItems(ctx context.Context, p Principal, page domain.Page) ([]domain.Item, error) {
	return s.Store.Items().ListItems(ctx, p.TenantID, page)
}

func (s *ItemService) UpdateItem(ctx context.Context, p Principal, id string, upd domain.ItemUpdate) (domain.Item, error) {
	if upd.IsEmpty() {
		return domain.Item{}, ErrInvalidRequest.WithMessage("nothing to update")
	}
	if upd.Name != nil {
		upd.Name = trimPtr(upd.Name)
		if *upd.Name == "" {
			return domain.Item{}, ErrInvalidRequest.WithMessage("item name is required")
		}
	}

	it, err := s.Store.Items().UpdateItem(ctx, p.TenantID, id, upd)
	return it, mapItemErr(err)
}

func (s *ItemService) DeleteItem(ctx context.Context, p Principal, id string) error {
	return mapItemErr(s.Store.Items().DeleteItem(ctx, p.TenantID, id))
}

func mapItemErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

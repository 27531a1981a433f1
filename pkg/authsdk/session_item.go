package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (s *Session) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	var out ItemResponse
	if err := s.call(ctx, http.MethodPost, "/v1/items", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetItem(ctx context.Context, id string) (*ItemResponse, error) {
	var out ItemResponse
	if err := s.call(ctx, http.MethodGet, "/v1/items/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListItems(ctx context.Context, page, limit int) (*ListItemsResponse, error) {
	var out ListItemsResponse
	if err := s.call(ctx, http.MethodGet, "/v1/items"+pageQuery(page, limit), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*ItemResponse, error) {
	var out ItemResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/items/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteItem(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/v1/items/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/httpx"
)

// ItemsHandler serves the tenant-scoped item resource. Items of other tenants
// answer 404.
type ItemsHandler struct {
	ItemService *service.ItemService
}

// HandleCreate godoc
//
//	@Summary	Create item
//	@Tags		Items
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		authsdk.CreateItemRequest	true	"item"
//	@Success	201		{object}	authsdk.ItemResponse
//	@Failure	400		{object}	authsdk.ErrorResponse
//	@Router		/v1/items [post].
func (h *ItemsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CreateItemRequest
	if !bind(w, r, &req) {
		return
	}

	it, err := h.ItemService.CreateItem(r.Context(), principal(r), req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toItemResponse(it))
}

// HandleList godoc
//
//	@Summary	List items
//	@Tags		Items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page	query		int	false	"page number, from 1"
//	@Param		limit	query		int	false	"page size, 1..100"
//	@Success	200		{object}	authsdk.ListItemsResponse
//	@Failure	400		{object}	authsdk.ErrorResponse
//	@Router		/v1/items [get].
func (h *ItemsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	n, limit, ok := page(w, r)
	if !ok {
		return
	}

	pg := domain.NewPage(n, limit)
	items, err := h.ItemService.ListItems(r.Context(), principal(r), pg)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := authsdk.ListItemsResponse{
		Items: make([]authsdk.ItemResponse, 0, len(items)),
		Page:  pg.Number,
		Limit: pg.Limit,
	}
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Get item
//	@Tags		Items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"item id"
//	@Success	200	{object}	authsdk.ItemResponse
//	@Failure	404	{object}	authsdk.ErrorResponse	"item_not_found"
//	@Router		/v1/items/{id} [get].
func (h *ItemsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	it, err := h.ItemService.GetItem(r.Context(), principal(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItemResponse(it))
}

// HandleUpdate godoc
//
//	@Summary	Update item
//	@Tags		Items
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"item id"
//	@Param		request	body		authsdk.UpdateItemRequest	true	"fields to change"
//	@Success	200		{object}	authsdk.ItemResponse
//	@Failure	400		{object}	authsdk.ErrorResponse
//	@Failure	404		{object}	authsdk.ErrorResponse	"item_not_found"
//	@Router		/v1/items/{id} [patch].
func (h *ItemsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UpdateItemRequest
	if !bind(w, r, &req) {
		return
	}

	it, err := h.ItemService.UpdateItem(r.Context(), principal(r), r.PathValue("id"), domain.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItemResponse(it))
}

// HandleDelete godoc
//
//	@Summary	Delete item
//	@Tags		Items
//	@Security	BearerAuth
//	@Param		id	path	string	true	"item id"
//	@Success	204
//	@Failure	404	{object}	authsdk.ErrorResponse	"item_not_found"
//	@Router		/v1/items/{id} [delete].
func (h *ItemsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ItemService.DeleteItem(r.Context(), principal(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

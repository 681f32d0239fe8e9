package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"wishlist-backend/application/ports"
	"wishlist-backend/domain/wishlist"
	"wishlist-backend/pkg/auth"
	"wishlist-backend/pkg/common"
	apperrors "wishlist-backend/pkg/errors"
	"wishlist-backend/pkg/utils"
)

// ItemHandler handles wishlist item HTTP requests
type ItemHandler struct {
	items        ports.ItemRepository
	errs         *apperrors.Handler
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewItemHandler creates a new item handler
func NewItemHandler(items ports.ItemRepository, logger *zap.Logger, maxBodyBytes int64) *ItemHandler {
	return &ItemHandler{
		items:        items,
		errs:         apperrors.NewHandler(logger),
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// ItemRequest is the body for creating or updating an item. URL and
// price may be null or omitted; a null url skips the format check.
type ItemRequest struct {
	Description string  `json:"description" validate:"required"`
	URL         *string `json:"url" validate:"omitempty,url"`
	Price       *string `json:"price"`
}

func (req *ItemRequest) fields() wishlist.ItemFields {
	return wishlist.ItemFields{
		Description: req.Description,
		URL:         req.URL,
		Price:       req.Price,
	}
}

// GetItems handles GET /wishlists/{wishlistID}/items. Public, like the
// list lookup it accompanies.
func (h *ItemHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "wishlistID")

	items, err := h.items.GetItems(r.Context(), listID)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, items)
}

// CreateItem handles POST /wishlists/{wishlistID}/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}
	listID := chi.URLParam(r, "wishlistID")

	var req ItemRequest
	if err := common.ParseJSONBody(w, r, &req, h.maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	item, err := h.items.CreateItem(r.Context(), listID, user.Email, req.fields())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /wishlists/{wishlistID}/items/{itemID}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}
	listID := chi.URLParam(r, "wishlistID")
	itemID := chi.URLParam(r, "itemID")

	var req ItemRequest
	if err := common.ParseJSONBody(w, r, &req, h.maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	item, err := h.items.UpdateItem(r.Context(), listID, itemID, user.Email, req.fields())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /wishlists/{wishlistID}/items/{itemID}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}
	listID := chi.URLParam(r, "wishlistID")
	itemID := chi.URLParam(r, "itemID")

	if err := h.items.DeleteItem(r.Context(), listID, itemID, user.Email); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondNoContent(w)
}

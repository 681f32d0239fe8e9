package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"wishlist-backend/application/ports"
	"wishlist-backend/pkg/auth"
	"wishlist-backend/pkg/common"
	apperrors "wishlist-backend/pkg/errors"
	"wishlist-backend/pkg/utils"
)

// ListHandler handles wishlist HTTP requests
type ListHandler struct {
	lists        ports.ListRepository
	errs         *apperrors.Handler
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewListHandler creates a new list handler
func NewListHandler(lists ports.ListRepository, logger *zap.Logger, maxBodyBytes int64) *ListHandler {
	return &ListHandler{
		lists:        lists,
		errs:         apperrors.NewHandler(logger),
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// ListRequest is the body for creating or renaming a wishlist.
type ListRequest struct {
	Name string `json:"name" validate:"required"`
}

// GetLists handles GET /wishlists
func (h *ListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}

	lists, err := h.lists.GetLists(r.Context(), user.Email)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, lists)
}

// GetList handles GET /wishlists/{wishlistID}. Intentionally public: a
// list is shareable by its id.
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "wishlistID")

	list, err := h.lists.GetList(r.Context(), id)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, list)
}

// CreateList handles POST /wishlists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}

	var req ListRequest
	if err := common.ParseJSONBody(w, r, &req, h.maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	list, err := h.lists.CreateList(r.Context(), req.Name, user.Email)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, list)
}

// UpdateList handles PUT /wishlists/{wishlistID}
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}
	id := chi.URLParam(r, "wishlistID")

	var req ListRequest
	if err := common.ParseJSONBody(w, r, &req, h.maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	list, err := h.lists.UpdateList(r.Context(), id, req.Name, user.Email)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, list)
}

// DeleteList handles DELETE /wishlists/{wishlistID}. Deleting a list
// cascades to its items; the cascade is best-effort and not atomic.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}
	id := chi.URLParam(r, "wishlistID")

	if err := h.lists.DeleteList(r.Context(), id, user.Email); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondNoContent(w)
}

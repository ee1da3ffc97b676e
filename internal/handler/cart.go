package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/kitcraft/internal/apperror"
	"github.com/sakif/kitcraft/internal/auth"
	"github.com/sakif/kitcraft/internal/model"
	"github.com/sakif/kitcraft/internal/service"
)

// CartHandler manages the per-user shopping cart.
type CartHandler struct {
	cart   *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(cart *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		logger: logger,
	}
}

type addMaterialsRequest struct {
	Materials []model.Material `json:"materials"`
}

// HandleList returns the cart in first-addition order.
//
// HTTP: GET /api/cart
func (h *CartHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	items, err := h.cart.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleAddMaterials merges a kit's materials into the cart.
//
// HTTP: POST /api/cart/items
// BODY: {"materials": [{"name": "Nails", "buyLink": "...", ...}, ...]}
//
// Responds with the merged cart. Re-adding materials already present is a
// no-op for those entries, so the client can push the same kit's materials
// twice without creating duplicates.
func (h *CartHandler) HandleAddMaterials(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var req addMaterialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	items, err := h.cart.AddMaterials(r.Context(), userID, req.Materials)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleClear empties the cart.
//
// HTTP: DELETE /api/cart
func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	if err := h.cart.Clear(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

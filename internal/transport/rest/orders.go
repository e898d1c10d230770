package rest

import (
	"fmt"
	"net/http"

	sferrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/internal/identity"
	"github.com/abgdnv/storefront/pkg/web"
)

// ListOrders returns one page of the orders of the signed in identity, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := h.page(w, r)
	if !ok {
		return
	}
	id, _ := SessionFrom(r.Context()).Identity.State().Identity()

	h.logger.DebugContext(r.Context(), "Received request to list orders", "limit", limit, "offset", offset)
	list, err := h.orders.FindByUserID(r.Context(), id.ID, offset, limit)
	if err != nil {
		h.fail(w, r, "Failed to fetch orders", err)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved order list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindOrderByID returns an order owned by the signed in identity. Admins can read any order.
// Orders of other customers are reported as not found.
func (h *Handler) FindOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID, ok := web.PathID(w, r, h.logger)
	if !ok {
		return
	}
	state := SessionFrom(r.Context()).Identity.State()
	id, _ := state.Identity()

	h.logger.DebugContext(r.Context(), "Received request to find order by ID", "ID", orderID)
	found, err := h.orders.FindByID(r.Context(), orderID)
	if err != nil {
		h.fail(w, r, fmt.Sprintf("Failed to retrieve order with ID %s", orderID), err)
		return
	}
	if found.UserID != id.ID && !state.HasRole(identity.RoleAdmin) {
		// foreign orders look missing
		h.fail(w, r, fmt.Sprintf("Failed to retrieve order with ID %s", orderID), fmt.Errorf("%w: %s", sferrors.ErrOrderNotFound, orderID))
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

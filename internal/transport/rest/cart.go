package rest

import (
	"fmt"
	"net/http"

	"github.com/abgdnv/storefront/pkg/web"
)

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the lines, totals and pricing of the session cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, SessionFrom(r.Context()).Cart.Summary())
}

// AddCartItem adds a product to the cart. A missing quantity adds one unit.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to add to cart", "productID", req.ProductID, "quantity", req.Quantity)

	c := SessionFrom(r.Context()).Cart
	if _, err := c.Add(req.ProductID, req.Quantity); err != nil {
		h.fail(w, r, fmt.Sprintf("Failed to add product %s to cart", req.ProductID), err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, c.Summary())
}

// UpdateCartItem sets the quantity of a cart line. Quantities above stock are lowered
// to the stock; quantities below one are rejected.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(w, r, h.logger)
	if !ok {
		return
	}
	var req updateItemRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update cart line", "productID", id, "quantity", req.Quantity)

	c := SessionFrom(r.Context()).Cart
	if _, err := c.UpdateQuantity(id, req.Quantity); err != nil {
		h.fail(w, r, fmt.Sprintf("Failed to update product %s in cart", id), err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, c.Summary())
}

// RemoveCartItem deletes a cart line. Removing a product that is not in the cart is a no-op.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(w, r, h.logger)
	if !ok {
		return
	}
	c := SessionFrom(r.Context()).Cart
	c.Remove(id)
	web.RespondJSON(w, h.logger, http.StatusOK, c.Summary())
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	SessionFrom(r.Context()).Cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

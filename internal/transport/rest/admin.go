package rest

import (
	"fmt"
	"net/http"

	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/pkg/web"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	CategoryID  string          `json:"categoryId" validate:"required"`
	Name        string          `json:"name" validate:"required,max=200"`
	Slug        string          `json:"slug" validate:"omitempty,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
	Featured    bool            `json:"featured"`
}

func (req productRequest) toProduct(id string) catalog.Product {
	return catalog.Product{
		ID:          id,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
		Featured:    req.Featured,
	}
}

// AdminListProducts returns the whole catalog, out-of-stock products included.
func (h *Handler) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, h.catalog.FindAll())
}

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	created, err := h.catalog.Create(req.toProduct(""))
	if err != nil {
		h.fail(w, r, "Failed to create product", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// UpdateProduct replaces a product. Carts see the new price and stock immediately.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(w, r, h.logger)
	if !ok {
		return
	}
	var req productRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	updated, err := h.catalog.Update(req.toProduct(id))
	if err != nil {
		h.fail(w, r, fmt.Sprintf("Failed to update product with ID %s", id), err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteProduct removes a product from the catalog. Cart lines for it disappear on next access.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.catalog.DeleteByID(id); err != nil {
		h.fail(w, r, fmt.Sprintf("Failed to delete product with ID %s", id), err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// AdminListOrders returns one page of all orders, newest first.
func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := h.page(w, r)
	if !ok {
		return
	}
	list, err := h.orders.FindAll(r.Context(), offset, limit)
	if err != nil {
		h.fail(w, r, "Failed to fetch orders", err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// AdminListMessages returns one page of contact messages, newest first.
func (h *Handler) AdminListMessages(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := h.page(w, r)
	if !ok {
		return
	}
	list, err := h.messages.FindAll(r.Context(), offset, limit)
	if err != nil {
		h.fail(w, r, "Failed to fetch messages", err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/internal/query"
	"github.com/abgdnv/storefront/pkg/web"
	"github.com/shopspring/decimal"
)

type productDetail struct {
	catalog.Product
	Category catalog.Category `json:"category"`
}

// ListCategories returns every category.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, h.catalog.Categories())
}

// ListProducts filters and sorts the catalog by the search, category, max_price,
// in_stock and sort query parameters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, ok := h.queryParams(w, r)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to list products",
		"search", params.Search, "category", params.CategoryID, "sort", params.Sort.String())

	list := query.Apply(h.catalog.FindAll(), params)
	h.logger.DebugContext(r.Context(), "Successfully listed products", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// ListFeatured returns the featured products in catalog order.
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	featured := make([]catalog.Product, 0)
	for _, p := range h.catalog.FindAll() {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	web.RespondJSON(w, h.logger, http.StatusOK, featured)
}

// FindProductByID retrieves a product with its category.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	p, err := h.catalog.FindByID(id)
	if err != nil {
		h.fail(w, r, fmt.Sprintf("Failed to retrieve product with ID %s", id), err)
		return
	}
	h.respondDetail(w, r, p)
}

// FindProductBySlug retrieves a product by its URL slug.
func (h *Handler) FindProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	h.logger.DebugContext(r.Context(), "Received request to find product by slug", "slug", slug)
	p, err := h.catalog.FindBySlug(slug)
	if err != nil {
		h.fail(w, r, fmt.Sprintf("Failed to retrieve product %q", slug), err)
		return
	}
	h.respondDetail(w, r, p)
}

func (h *Handler) respondDetail(w http.ResponseWriter, r *http.Request, p catalog.Product) {
	c, err := h.catalog.FindCategory(p.CategoryID)
	if err != nil {
		h.fail(w, r, fmt.Sprintf("Failed to retrieve category of product %s", p.ID), err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, productDetail{Product: p, Category: c})
}

func (h *Handler) queryParams(w http.ResponseWriter, r *http.Request) (query.Params, bool) {
	q := r.URL.Query()
	params := query.Params{
		Search:     q.Get("search"),
		CategoryID: q.Get("category"),
	}

	params.Sort = query.ParseSortKey(q.Get("sort"))

	if v := q.Get("max_price"); v != "" {
		maxPrice, err := decimal.NewFromString(v)
		if err != nil || maxPrice.IsNegative() {
			web.RespondError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Invalid max_price: %s", v))
			return query.Params{}, false
		}
		params.MaxPrice = &maxPrice
	}

	if v := q.Get("in_stock"); v != "" {
		inStock, err := strconv.ParseBool(v)
		if err != nil {
			web.RespondError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Invalid in_stock: %s", v))
			return query.Params{}, false
		}
		params.InStockOnly = inStock
	}
	return params, true
}

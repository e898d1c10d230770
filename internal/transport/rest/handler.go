// Package rest exposes the storefront core over JSON HTTP.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/internal/contact"
	sferrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/internal/order"
	"github.com/abgdnv/storefront/internal/session"
	"github.com/abgdnv/storefront/pkg/auth"
	"github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Deps are the collaborators the handlers call into.
type Deps struct {
	Catalog  catalog.Store
	Orders   order.Store
	Messages contact.Store
	Sessions *session.Registry
	Tokens   TokenManager
	Session  config.SessionConfig
}

// TokenManager binds a browser to its session id.
type TokenManager interface {
	auth.Signer
	auth.Verifier
}

type Handler struct {
	catalog  catalog.Store
	orders   order.Store
	messages contact.Store
	sessions *session.Registry
	tokens   TokenManager
	cookie   config.SessionConfig
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(deps Deps, logger *slog.Logger) *Handler {
	return &Handler{
		catalog:  deps.Catalog,
		orders:   deps.Orders,
		messages: deps.Messages,
		sessions: deps.Sessions,
		tokens:   deps.Tokens,
		cookie:   deps.Session,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the storefront API. Middlewares in mw run after an existing
// session is resolved and before a new one is created, so a request they reject never
// allocates a session. The catalog is served without creating sessions.
func (h *Handler) RegisterRoutes(r chi.Router, mw ...func(http.Handler) http.Handler) {
	r.Get("/healthz", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.ResolveSession)
		r.Use(mw...)

		r.Get("/categories", h.ListCategories)
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/featured", h.ListFeatured)
			r.Get("/slug/{slug}", h.FindProductBySlug)
			r.Get("/{id}", h.FindProductByID)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.SessionMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddCartItem)
				r.Put("/items/{id}", h.UpdateCartItem)
				r.Delete("/items/{id}", h.RemoveCartItem)
			})

			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", h.Login)
				r.Post("/signup", h.Signup)
				r.Post("/logout", h.Logout)
				r.Get("/me", h.Me)
			})

			r.Post("/contact", h.SubmitMessage)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireAuth)
				r.Route("/checkout", func(r chi.Router) {
					r.Get("/", h.GetCheckout)
					r.Delete("/", h.ResetCheckout)
					r.Put("/address", h.SubmitAddress)
					r.Put("/payment", h.SelectPayment)
					r.Post("/next", h.AdvanceCheckout)
					r.Post("/back", h.BackCheckout)
					r.Post("/place", h.PlaceOrder)
				})
				r.Route("/orders", func(r chi.Router) {
					r.Get("/", h.ListOrders)
					r.Get("/{id}", h.FindOrderByID)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(h.RequireAuth, h.RequireAdmin)
				r.Route("/products", func(r chi.Router) {
					r.Get("/", h.AdminListProducts)
					r.Post("/", h.CreateProduct)
					r.Put("/{id}", h.UpdateProduct)
					r.Delete("/{id}", h.DeleteProduct)
				})
				r.Get("/orders", h.AdminListOrders)
				r.Get("/messages", h.AdminListMessages)
			})
		})
	})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// statusFor maps the storefront error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sferrors.ErrProductNotFound),
		errors.Is(err, sferrors.ErrCategoryNotFound),
		errors.Is(err, sferrors.ErrOrderNotFound),
		errors.Is(err, sferrors.ErrNotInCart):
		return http.StatusNotFound
	case errors.Is(err, sferrors.ErrQuantityOutOfRange),
		errors.Is(err, sferrors.ErrOutOfStock),
		errors.Is(err, sferrors.ErrInvalidStep),
		errors.Is(err, sferrors.ErrEmptyCart),
		errors.Is(err, sferrors.ErrInvalidPaymentMethod),
		errors.Is(err, sferrors.ErrInvalidProduct):
		return http.StatusBadRequest
	case errors.Is(err, sferrors.ErrInvalidCredentials),
		errors.Is(err, sferrors.ErrAuthenticationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, sferrors.ErrAccessDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an error response. Unexpected errors are logged and hidden.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), msg, "error", err)
		web.RespondError(w, h.logger, status, msg)
		return
	}
	h.logger.WarnContext(r.Context(), msg, "error", err, "status", status)
	web.RespondError(w, h.logger, status, err.Error())
}

// page reads the offset and limit query parameters.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) (offset, limit int, ok bool) {
	limit, ok = web.ParseValidateGt(r, w, h.logger, "limit", 0, defaultPageLimit)
	if !ok {
		return 0, 0, false
	}
	offset, ok = web.ParseValidateGte(r, w, h.logger, "offset", 0, 0)
	if !ok {
		return 0, 0, false
	}
	return offset, min(limit, maxPageLimit), true
}

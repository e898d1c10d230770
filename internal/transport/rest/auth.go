package rest

import (
	"net/http"

	"github.com/abgdnv/storefront/internal/identity"
	"github.com/abgdnv/storefront/pkg/web"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
}

type meResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          *identity.Identity `json:"user,omitempty"`
}

// Login signs the session in with email and password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received login request", "email", req.Email)

	id, err := SessionFrom(r.Context()).Login(req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "Login failed", err)
		return
	}
	h.logger.InfoContext(r.Context(), "User logged in", "userID", id.ID, "role", id.Role.String())
	web.RespondJSON(w, h.logger, http.StatusOK, meResponse{Authenticated: true, User: &id})
}

// Signup creates a customer and signs the session in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	id := SessionFrom(r.Context()).Signup(req.Email, req.Password, req.FullName)
	h.logger.InfoContext(r.Context(), "User signed up", "userID", id.ID)
	web.RespondJSON(w, h.logger, http.StatusCreated, meResponse{Authenticated: true, User: &id})
}

// Logout returns the session to guest. The cart is kept.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	SessionFrom(r.Context()).Logout()
	h.logger.InfoContext(r.Context(), "User logged out")
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the identity signed in to the session, if any.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := SessionFrom(r.Context()).Identity.State().Identity()
	if !ok {
		web.RespondJSON(w, h.logger, http.StatusOK, meResponse{})
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, meResponse{Authenticated: true, User: &id})
}

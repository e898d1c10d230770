package rest

import (
	"net/http"

	"github.com/abgdnv/storefront/internal/contact"
	"github.com/abgdnv/storefront/pkg/web"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SubmitMessage stores a contact form message. Guests may submit too.
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	m := contact.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if id, ok := SessionFrom(r.Context()).Identity.State().Identity(); ok {
		m.UserID = id.ID
	}

	saved, err := h.messages.Submit(r.Context(), m)
	if err != nil {
		h.fail(w, r, "Failed to submit message", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Contact message received", "ID", saved.ID, "subject", saved.Subject)
	web.RespondJSON(w, h.logger, http.StatusCreated, saved)
}

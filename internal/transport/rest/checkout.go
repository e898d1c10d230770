package rest

import (
	"net/http"

	"github.com/abgdnv/storefront/internal/checkout"
	"github.com/abgdnv/storefront/internal/order"
	"github.com/abgdnv/storefront/pkg/web"
)

type paymentRequest struct {
	Method string `json:"method" validate:"required,oneof=card paypal"`
}

// GetCheckout returns the current checkout step with the data entered so far.
func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, "Failed to read checkout")(SessionFrom(r.Context()).Checkout.View())
}

// SubmitAddress stores the shipping address and moves to the payment step.
func (h *Handler) SubmitAddress(w http.ResponseWriter, r *http.Request) {
	var addr order.ShippingAddress
	if !web.DecodeValid(w, r, h.logger, h.validate, &addr) {
		return
	}
	h.respondView(w, r, "Failed to submit shipping address")(SessionFrom(r.Context()).Checkout.SubmitAddress(addr))
}

// SelectPayment picks card or paypal.
func (h *Handler) SelectPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	method, err := order.ParsePaymentMethod(req.Method)
	if err != nil {
		h.fail(w, r, "Failed to select payment method", err)
		return
	}
	h.respondView(w, r, "Failed to select payment method")(SessionFrom(r.Context()).Checkout.SelectPayment(method))
}

// AdvanceCheckout moves to the next step.
func (h *Handler) AdvanceCheckout(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, "Failed to advance checkout")(SessionFrom(r.Context()).Checkout.Advance())
}

// BackCheckout moves to the previous step.
func (h *Handler) BackCheckout(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, "Failed to go back in checkout")(SessionFrom(r.Context()).Checkout.Back())
}

// PlaceOrder confirms the review step and empties the cart.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	placed, err := SessionFrom(r.Context()).Checkout.PlaceOrder(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to place order", err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusCreated, placed)
}

// ResetCheckout abandons the checkout and starts again at the address step.
func (h *Handler) ResetCheckout(w http.ResponseWriter, r *http.Request) {
	SessionFrom(r.Context()).Checkout.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondView(w http.ResponseWriter, r *http.Request, msg string) func(checkout.View, error) {
	return func(v checkout.View, err error) {
		if err != nil {
			h.fail(w, r, msg, err)
			return
		}
		h.logger.DebugContext(r.Context(), "Checkout step", "step", v.Step.String())
		web.RespondJSON(w, h.logger, http.StatusOK, v)
	}
}

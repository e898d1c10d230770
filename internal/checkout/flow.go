// Package checkout drives a session through address, payment and review to a placed order.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/abgdnv/storefront/internal/cart"
	"github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/internal/identity"
	"github.com/abgdnv/storefront/internal/order"
	"github.com/abgdnv/storefront/internal/pricing"
)

// IdentityReader exposes the sign-in state of the session.
type IdentityReader interface {
	State() identity.State
}

// Review is the snapshot shown before the order is confirmed.
type Review struct {
	Lines         []cart.Line           `json:"items"`
	TotalItems    int                   `json:"totalItems"`
	Address       order.ShippingAddress `json:"shippingAddress"`
	PaymentMethod order.PaymentMethod   `json:"paymentMethod"`
	Pricing       pricing.Quote         `json:"pricing"`
}

// View is the checkout state as presented to the client.
type View struct {
	Step          Step                  `json:"step"`
	Address       order.ShippingAddress `json:"shippingAddress"`
	PaymentMethod order.PaymentMethod   `json:"paymentMethod"`
	Review        *Review               `json:"review,omitempty"`
	Order         *order.Order          `json:"order,omitempty"`
}

// Flow is the checkout of one session. Every operation except Reset requires the
// session to be authenticated and fails with ErrAuthenticationRequired for guests.
// Operations not allowed at the current step fail with ErrInvalidStep.
type Flow struct {
	mu      sync.Mutex
	ids     IdentityReader
	cart    *cart.Cart
	placer  *Placer
	step    Step
	address order.ShippingAddress
	payment order.PaymentMethod
	placed  *order.Order
}

func NewFlow(ids IdentityReader, c *cart.Cart, placer *Placer) *Flow {
	return &Flow{ids: ids, cart: c, placer: placer}
}

// SubmitAddress stores the shipping address and moves to the payment step.
// Submitting an address after an order was placed starts a new checkout.
func (f *Flow) SubmitAddress(addr order.ShippingAddress) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.authenticated()
	if err != nil {
		return View{}, err
	}
	if f.step == StepPlaced {
		f.restart()
	}
	if err := f.expect(StepAddress); err != nil {
		return View{}, err
	}
	f.address = addr
	f.step = StepPayment
	return f.view(id), nil
}

// SelectPayment picks the payment method. Card is selected until changed.
func (f *Flow) SelectPayment(method order.PaymentMethod) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.authenticated()
	if err != nil {
		return View{}, err
	}
	if err := f.expect(StepPayment); err != nil {
		return View{}, err
	}
	if _, err := method.MarshalText(); err != nil {
		return View{}, err
	}
	f.payment = method
	return f.view(id), nil
}

// Advance moves one step forward. Leaving the address step needs a submitted address,
// and the review step is left only through PlaceOrder.
func (f *Flow) Advance() (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.authenticated()
	if err != nil {
		return View{}, err
	}
	switch f.step {
	case StepAddress:
		if f.address.IsZero() {
			return View{}, fmt.Errorf("%w: shipping address not submitted", errors.ErrInvalidStep)
		}
		f.step = StepPayment
	case StepPayment:
		f.step = StepReview
	case StepReview, StepPlaced:
		return View{}, fmt.Errorf("%w: cannot advance from %s", errors.ErrInvalidStep, f.step)
	}
	return f.view(id), nil
}

// Back moves one step backwards keeping everything entered so far.
func (f *Flow) Back() (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.authenticated()
	if err != nil {
		return View{}, err
	}
	switch f.step {
	case StepPayment:
		f.step = StepAddress
	case StepReview:
		f.step = StepPayment
	case StepAddress, StepPlaced:
		return View{}, fmt.Errorf("%w: cannot go back from %s", errors.ErrInvalidStep, f.step)
	}
	return f.view(id), nil
}

// Review returns the snapshot of cart, address and payment. Only valid at the review step.
func (f *Flow) Review() (Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.authenticated(); err != nil {
		return Review{}, err
	}
	if err := f.expect(StepReview); err != nil {
		return Review{}, err
	}
	return f.review(), nil
}

// PlaceOrder confirms the review: the order is recorded with the current prices, the
// cart is emptied and the flow ends in StepPlaced. An empty cart fails with ErrEmptyCart.
func (f *Flow) PlaceOrder(ctx context.Context) (order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.authenticated()
	if err != nil {
		return order.Order{}, err
	}
	if err := f.expect(StepReview); err != nil {
		return order.Order{}, err
	}

	var placed order.Order
	err = f.cart.Commit(func(lines []cart.Line) error {
		if len(lines) == 0 {
			return errors.ErrEmptyCart
		}
		o, err := f.placer.record(ctx, id, lines, f.address, f.payment)
		placed = o
		return err
	})
	if err != nil {
		return order.Order{}, err
	}
	f.placer.announce(ctx, placed, id.Email)

	f.step = StepPlaced
	f.placed = &placed
	return placed, nil
}

// Reset starts a new checkout from the address step.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.restart()
}

// View returns the current step. The confirmation of a placed order is shown
// until the cart is filled again, then the flow is back at the address step.
func (f *Flow) View() (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.authenticated()
	if err != nil {
		return View{}, err
	}
	if f.step == StepPlaced && f.cart.TotalItems() > 0 {
		f.restart()
	}
	return f.view(id), nil
}

func (f *Flow) restart() {
	f.step = StepAddress
	f.address = order.ShippingAddress{}
	f.payment = order.PaymentCard
	f.placed = nil
}

func (f *Flow) authenticated() (identity.Identity, error) {
	id, ok := f.ids.State().Identity()
	if !ok {
		return identity.Identity{}, errors.ErrAuthenticationRequired
	}
	return id, nil
}

func (f *Flow) expect(step Step) error {
	if f.step != step {
		return fmt.Errorf("%w: at %s, expected %s", errors.ErrInvalidStep, f.step, step)
	}
	return nil
}

func (f *Flow) review() Review {
	summary := f.cart.Summary()
	return Review{
		Lines:         summary.Lines,
		TotalItems:    summary.TotalItems,
		Address:       f.address,
		PaymentMethod: f.payment,
		Pricing:       summary.Quote,
	}
}

func (f *Flow) view(id identity.Identity) View {
	v := View{
		Step:          f.step,
		Address:       f.address,
		PaymentMethod: f.payment,
	}
	if v.Address.IsZero() {
		v.Address.FullName = id.FullName
	}
	switch f.step {
	case StepReview:
		r := f.review()
		v.Review = &r
	case StepPlaced:
		v.Order = f.placed
	}
	return v
}

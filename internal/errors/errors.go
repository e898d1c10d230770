// Package errors provides the error taxonomy shared by the storefront core.
package errors

import "errors"

// Catalog
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidProduct   = errors.New("invalid product")
)

// Cart
var (
	ErrQuantityOutOfRange = errors.New("quantity out of range")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrNotInCart          = errors.New("product is not in the cart")
)

// Identity and access
var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAccessDenied           = errors.New("access denied")
	ErrSessionNotFound        = errors.New("session not found")
)

// Checkout and orders
var (
	ErrInvalidStep          = errors.New("operation not allowed at the current checkout step")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrOrderNotFound        = errors.New("order not found")
)

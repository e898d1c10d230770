// Package pricing holds the shipping policy applied wherever the storefront shows money.
package pricing

import "github.com/shopspring/decimal"

var (
	freeShippingThreshold = decimal.NewFromInt(50)
	flatShippingFee       = decimal.RequireFromString("5.99")
)

// FreeShippingThreshold returns the subtotal from which shipping is free.
func FreeShippingThreshold() decimal.Decimal {
	return freeShippingThreshold
}

// FlatShippingFee returns the fee charged below the free shipping threshold.
func FlatShippingFee() decimal.Decimal {
	return flatShippingFee
}

// Quote is the money breakdown for a subtotal.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	// UntilFreeShipping is how much more has to be spent to qualify for free shipping.
	UntilFreeShipping decimal.Decimal `json:"untilFreeShipping"`
}

// ShippingCost returns 0 for subtotals of at least FreeShippingThreshold and FlatShippingFee otherwise.
func ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

// QuoteFor prices subtotal.
func QuoteFor(subtotal decimal.Decimal) Quote {
	shipping := ShippingCost(subtotal)
	until := freeShippingThreshold.Sub(subtotal)
	if until.IsNegative() {
		until = decimal.Zero
	}
	return Quote{
		Subtotal:          subtotal,
		Shipping:          shipping,
		Total:             subtotal.Add(shipping),
		UntilFreeShipping: until,
	}
}

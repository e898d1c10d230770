// Package cart implements the shopping cart of a single storefront session.
package cart

import (
	"fmt"
	"slices"
	"sync"

	"github.com/abgdnv/storefront/internal/catalog"
	sferrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

// ProductLookup resolves live product data for cart lines.
type ProductLookup interface {
	FindByID(id string) (catalog.Product, error)
}

// Line is a cart line resolved against the catalog at read time.
type Line struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Summary is everything a cart page shows.
type Summary struct {
	Lines      []Line        `json:"items"`
	TotalItems int           `json:"totalItems"`
	Quote      pricing.Quote `json:"pricing"`
}

type entry struct {
	productID string
	quantity  int
}

// Cart keeps product ids and quantities in insertion order. Prices and stock are
// always read from the catalog, so totals follow catalog changes until checkout.
//
// Every line satisfies 1 <= quantity <= stock. Each operation first reconciles the
// lines against the catalog: lines whose product disappeared or sold out are
// dropped and quantities above the current stock are lowered.
//
// A Cart is safe for concurrent use.
type Cart struct {
	mu      sync.Mutex
	catalog ProductLookup
	entries []entry
}

func New(catalog ProductLookup) *Cart {
	return &Cart{catalog: catalog}
}

// Add puts quantity units of the product in the cart. A quantity below 1 counts as 1.
// The resulting line quantity is capped at the product stock. Sold out products are
// rejected with ErrOutOfStock.
func (c *Cart) Add(productID string, quantity int) (Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reconcile()
	product, err := c.catalog.FindByID(productID)
	if err != nil {
		return Line{}, err
	}
	if !product.InStock() {
		return Line{}, fmt.Errorf("%w: %s: %w", sferrors.ErrOutOfStock, product.Name, sferrors.ErrQuantityOutOfRange)
	}
	quantity = max(quantity, 1)

	if i := c.index(productID); i >= 0 {
		c.entries[i].quantity = min(c.entries[i].quantity+quantity, product.Stock)
		return newLine(product, c.entries[i].quantity), nil
	}
	e := entry{productID: productID, quantity: min(quantity, product.Stock)}
	c.entries = append(c.entries, e)
	return newLine(product, e.quantity), nil
}

// UpdateQuantity sets the quantity of an existing line. Quantities above the stock are
// capped at the stock. Quantities below 1 are rejected with ErrQuantityOutOfRange and
// leave the line unchanged; removal is always explicit through Remove.
func (c *Cart) UpdateQuantity(productID string, quantity int) (Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products := c.reconcile()
	i := c.index(productID)
	if i < 0 {
		if _, err := c.catalog.FindByID(productID); err != nil {
			return Line{}, err
		}
		return Line{}, fmt.Errorf("%w: %s", sferrors.ErrNotInCart, productID)
	}
	product := products[productID]
	if quantity < 1 {
		return Line{}, fmt.Errorf("%w: quantity %d is below 1", sferrors.ErrQuantityOutOfRange, quantity)
	}
	c.entries[i].quantity = min(quantity, product.Stock)
	return newLine(product, c.entries[i].quantity), nil
}

// Remove deletes the line for productID. Removing an absent product is not an error.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = slices.DeleteFunc(c.entries, func(e entry) bool { return e.productID == productID })
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// Lines returns the lines in insertion order with live product data.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines(c.reconcile())
}

// TotalItems is the sum of quantities, not the number of lines.
func (c *Cart) TotalItems() int {
	return totalItems(c.Lines())
}

// TotalPrice is the sum of price times quantity using current catalog prices.
func (c *Cart) TotalPrice() decimal.Decimal {
	return totalPrice(c.Lines())
}

// Summary returns lines, item count and the pricing quote from a single consistent read.
func (c *Cart) Summary() Summary {
	lines := c.Lines()
	return Summary{
		Lines:      lines,
		TotalItems: totalItems(lines),
		Quote:      pricing.QuoteFor(totalPrice(lines)),
	}
}

// Commit hands the current lines to fn while holding the cart, and empties the cart
// only if fn succeeds. Other operations on the cart wait until Commit returns.
func (c *Cart) Commit(fn func(lines []Line) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := fn(c.lines(c.reconcile())); err != nil {
		return err
	}
	c.entries = nil
	return nil
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.entries, func(e entry) bool { return e.productID == productID })
}

// reconcile enforces the line invariant against the current catalog and returns the
// products it resolved. Caller holds c.mu.
func (c *Cart) reconcile() map[string]catalog.Product {
	products := make(map[string]catalog.Product, len(c.entries))
	kept := c.entries[:0]
	for _, e := range c.entries {
		p, err := c.catalog.FindByID(e.productID)
		if err != nil || !p.InStock() {
			continue
		}
		e.quantity = min(e.quantity, p.Stock)
		products[e.productID] = p
		kept = append(kept, e)
	}
	clear(c.entries[len(kept):])
	c.entries = kept
	return products
}

func (c *Cart) lines(products map[string]catalog.Product) []Line {
	out := make([]Line, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, newLine(products[e.productID], e.quantity))
	}
	return out
}

func newLine(p catalog.Product, quantity int) Line {
	return Line{
		Product:   p,
		Quantity:  quantity,
		LineTotal: p.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func totalItems(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func totalPrice(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return total
}

// Package catalog holds the products and categories offered by the storefront.
package catalog

import (
	"github.com/shopspring/decimal"
)

// Product represents a product entity in the catalog.
type Product struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"categoryId"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
	Images      []string        `json:"images,omitempty"`
	Featured    bool            `json:"featured"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Store is the read and admin surface of the catalog.
type Store interface {
	FindByID(id string) (Product, error)
	FindBySlug(slug string) (Product, error)
	// FindAll returns every product in catalog order.
	FindAll() []Product
	Categories() []Category
	FindCategory(id string) (Category, error)

	Create(p Product) (Product, error)
	Update(p Product) (Product, error)
	DeleteByID(id string) error
}

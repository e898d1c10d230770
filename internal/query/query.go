// Package query filters and orders catalog products for listing pages.
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllCategories disables the category filter.
const AllCategories = "all"

type SortKey int

const (
	// SortFeatured puts featured products first and keeps catalog order within each group.
	SortFeatured SortKey = iota
	SortPriceLow
	SortPriceHigh
	SortName
)

var sortKeyNames = map[SortKey]string{
	SortFeatured:  "featured",
	SortPriceLow:  "price-low",
	SortPriceHigh: "price-high",
	SortName:      "name",
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// ParseSortKey maps the wire name of a sort order to a SortKey. Empty and unknown
// names fall back to featured.
func ParseSortKey(s string) SortKey {
	for k, name := range sortKeyNames {
		if name == s {
			return k
		}
	}
	return SortFeatured
}

// Params are the listing controls. The zero value matches every product in featured order.
type Params struct {
	Search string
	// CategoryID of "" or AllCategories matches every category.
	CategoryID string
	// MaxPrice of nil means no ceiling.
	MaxPrice    *decimal.Decimal
	InStockOnly bool
	Sort        SortKey
}

// Apply returns the products matching params, ordered by params.Sort.
// The input slice is never modified.
func Apply(products []catalog.Product, params Params) []catalog.Product {
	search := strings.ToLower(params.Search)

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if matches(p, search, params) {
			out = append(out, p)
		}
	}

	switch params.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b catalog.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b catalog.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortName:
		// collators keep internal buffers and are not safe for concurrent use
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b catalog.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	default:
		out = featuredFirst(out)
	}
	return out
}

func matches(p catalog.Product, search string, params Params) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(p.Name), search) &&
		!strings.Contains(strings.ToLower(p.Description), search) {
		return false
	}
	if params.CategoryID != "" && params.CategoryID != AllCategories && p.CategoryID != params.CategoryID {
		return false
	}
	if params.InStockOnly && !p.InStock() {
		return false
	}
	if params.MaxPrice != nil && p.Price.GreaterThan(*params.MaxPrice) {
		return false
	}
	return true
}

// featuredFirst is a stable partition: featured products, then the rest, each in input order.
func featuredFirst(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.Featured {
			out = append(out, p)
		}
	}
	for _, p := range products {
		if !p.Featured {
			out = append(out, p)
		}
	}
	return out
}

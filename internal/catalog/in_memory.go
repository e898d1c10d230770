package catalog

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/abgdnv/storefront/internal/errors"
	"github.com/google/uuid"
)

// inMemory implements Store using maps plus an ordered id list, so that
// FindAll keeps catalog order.
type inMemory struct {
	mu         sync.RWMutex
	products   map[string]Product
	order      []string
	categories []Category
}

// NewInMemoryStore creates a Store holding the given categories and products.
// Products are kept in the order given.
func NewInMemoryStore(categories []Category, products []Product) Store {
	s := &inMemory{
		products:   make(map[string]Product, len(products)),
		order:      make([]string, 0, len(products)),
		categories: slices.Clone(categories),
	}
	for _, p := range products {
		s.products[p.ID] = clone(p)
		s.order = append(s.order, p.ID)
	}
	return s
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", errors.ErrProductNotFound, id)
	}
	return clone(p), nil
}

func (s *inMemory) FindBySlug(slug string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if s.products[id].Slug == slug {
			return clone(s.products[id]), nil
		}
	}
	return Product{}, fmt.Errorf("%w: slug %s", errors.ErrProductNotFound, slug)
}

func (s *inMemory) FindAll() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, clone(s.products[id]))
	}
	return list
}

func (s *inMemory) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

func (s *inMemory) FindCategory(id string) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findCategory(id)
}

func (s *inMemory) findCategory(id string) (Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %s", errors.ErrCategoryNotFound, id)
}

// Create adds a product at the end of the catalog. ID is generated and the slug is
// derived from the name when empty.
func (s *inMemory) Create(p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = "product-" + uuid.NewString()
	if err := s.prepare(&p); err != nil {
		return Product{}, err
	}
	s.products[p.ID] = clone(p)
	s.order = append(s.order, p.ID)
	return clone(p), nil
}

// Update replaces the product with the same ID, keeping its catalog position.
func (s *inMemory) Update(p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return Product{}, fmt.Errorf("%w: %s", errors.ErrProductNotFound, p.ID)
	}
	if err := s.prepare(&p); err != nil {
		return Product{}, err
	}
	s.products[p.ID] = clone(p)
	return clone(p), nil
}

func (s *inMemory) DeleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("%w: %s", errors.ErrProductNotFound, id)
	}
	delete(s.products, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

// prepare validates p and fills the slug. Caller holds the write lock.
func (s *inMemory) prepare(p *Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", errors.ErrInvalidProduct)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", errors.ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", errors.ErrInvalidProduct)
	}
	if _, err := s.findCategory(p.CategoryID); err != nil {
		return err
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	for id, other := range s.products {
		if id != p.ID && other.Slug == p.Slug {
			return fmt.Errorf("%w: slug %q already in use", errors.ErrInvalidProduct, p.Slug)
		}
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// Slugify lowercases name and joins its words with dashes.
func Slugify(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

func clone(p Product) Product {
	p.Images = slices.Clone(p.Images)
	return p
}

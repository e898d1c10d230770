package catalog

import (
	"testing"

	"github.com/abgdnv/storefront/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore() Store {
	return NewInMemoryStore(SeedCategories(), SeedProducts())
}

func TestInMemoryStore_Find(t *testing.T) {
	store := newSeededStore()

	t.Run("by id", func(t *testing.T) {
		p, err := store.FindByID("2")
		require.NoError(t, err)
		assert.Equal(t, "Tesla Cybertruck", p.Name)
	})
	t.Run("by slug", func(t *testing.T) {
		p, err := store.FindBySlug("super-speed-blastway")
		require.NoError(t, err)
		assert.Equal(t, "3", p.ID)
	})
	t.Run("unknown id", func(t *testing.T) {
		_, err := store.FindByID("999")
		assert.ErrorIs(t, err, errors.ErrProductNotFound)
	})
	t.Run("unknown slug", func(t *testing.T) {
		_, err := store.FindBySlug("nope")
		assert.ErrorIs(t, err, errors.ErrProductNotFound)
	})
	t.Run("all keeps catalog order", func(t *testing.T) {
		ids := make([]string, 0)
		for _, p := range store.FindAll() {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids)
	})
	t.Run("category", func(t *testing.T) {
		c, err := store.FindCategory(CategoryTrackSets)
		require.NoError(t, err)
		assert.Equal(t, "track-sets", c.Slug)
		_, err = store.FindCategory("42")
		assert.ErrorIs(t, err, errors.ErrCategoryNotFound)
	})
}

func TestInMemoryStore_ReturnsCopies(t *testing.T) {
	// given
	store := newSeededStore()
	p, err := store.FindByID("6")
	require.NoError(t, err)

	// when
	p.Images[0] = "mutated"
	p.Stock = 0

	// then
	again, err := store.FindByID("6")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Images[0])
	assert.Equal(t, 6, again.Stock)
}

func TestInMemoryStore_Create(t *testing.T) {
	testCases := []struct {
		name        string
		product     Product
		expectedErr error
		expectSlug  string
	}{
		{
			name:       "derives slug from name",
			product:    Product{CategoryID: CategoryCars, Name: "Twin  Mill III", Price: decimal.RequireFromString("3.50"), Stock: 4},
			expectSlug: "twin-mill-iii",
		},
		{
			name:        "negative price",
			product:     Product{CategoryID: CategoryCars, Name: "Broken", Price: decimal.RequireFromString("-1"), Stock: 1},
			expectedErr: errors.ErrInvalidProduct,
		},
		{
			name:        "negative stock",
			product:     Product{CategoryID: CategoryCars, Name: "Broken", Price: decimal.Zero, Stock: -1},
			expectedErr: errors.ErrInvalidProduct,
		},
		{
			name:        "blank name",
			product:     Product{CategoryID: CategoryCars, Name: "  ", Price: decimal.Zero},
			expectedErr: errors.ErrInvalidProduct,
		},
		{
			name:        "unknown category",
			product:     Product{CategoryID: "9", Name: "Orphan", Price: decimal.Zero},
			expectedErr: errors.ErrCategoryNotFound,
		},
		{
			name:        "duplicate slug",
			product:     Product{CategoryID: CategoryCars, Name: "Tesla Cybertruck", Price: decimal.Zero},
			expectedErr: errors.ErrInvalidProduct,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			store := newSeededStore()

			// when
			created, err := store.Create(tc.product)

			// then
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Len(t, store.FindAll(), 6)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectSlug, created.Slug)
			assert.Contains(t, created.ID, "product-")
			all := store.FindAll()
			assert.Equal(t, created.ID, all[len(all)-1].ID)
		})
	}
}

func TestInMemoryStore_UpdateKeepsPosition(t *testing.T) {
	// given
	store := newSeededStore()
	p, err := store.FindByID("2")
	require.NoError(t, err)
	p.Price = decimal.RequireFromString("7.49")

	// when
	updated, err := store.Update(p)

	// then
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("7.49").Equal(updated.Price))
	assert.Equal(t, "2", store.FindAll()[1].ID)

	_, err = store.Update(Product{ID: "missing", CategoryID: CategoryCars, Name: "x"})
	assert.ErrorIs(t, err, errors.ErrProductNotFound)
}

func TestInMemoryStore_Delete(t *testing.T) {
	// given
	store := newSeededStore()

	// when
	err := store.DeleteByID("3")

	// then
	require.NoError(t, err)
	_, err = store.FindByID("3")
	assert.ErrorIs(t, err, errors.ErrProductNotFound)
	assert.Len(t, store.FindAll(), 5)
	assert.ErrorIs(t, store.DeleteByID("3"), errors.ErrProductNotFound)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hot-wheels-loop", Slugify("  Hot Wheels\tLoop "))
}

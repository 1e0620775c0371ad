package order

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revline/revline/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func catalog() (map[int64]*domain.Product, map[int64]*domain.ProductVariant) {
	products := map[int64]*domain.Product{
		1: {ID: 1, Name: "Hood sticker", Price: dec("1000.00"), StockQuantity: 10, IsAvailable: true},
		2: {ID: 2, Name: "Club tee", Price: dec("25.00"), StockQuantity: 3, IsAvailable: true},
	}
	variants := map[int64]*domain.ProductVariant{
		10: {ID: 10, ProductId: 1, Size: "L", PriceModifier: dec("-200.00"), StockQuantity: 5, IsAvailable: true},
	}
	return products, variants
}

func TestBuildItemsFreezesVariantPrice(t *testing.T) {
	products, variants := catalog()
	items, total, err := BuildItems(products, variants, []Line{
		{ProductID: 1, VariantID: 10, Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "800.00", items[0].Price.StringFixed(2))
	assert.Equal(t, "1600.00", total.StringFixed(2))
	assert.Equal(t, "Hood sticker", items[0].Name)
}

func TestBuildItemsMixedLines(t *testing.T) {
	products, variants := catalog()
	_, total, err := BuildItems(products, variants, []Line{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "1050.00", total.StringFixed(2))
}

func TestBuildItemsEmpty(t *testing.T) {
	products, variants := catalog()
	_, _, err := BuildItems(products, variants, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestBuildItemsFailsWholeOrder(t *testing.T) {
	products, variants := catalog()

	t.Run("unknown product", func(t *testing.T) {
		_, _, err := BuildItems(products, variants, []Line{
			{ProductID: 1, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
		var lineErr *LineError
		require.True(t, errors.As(err, &lineErr))
		assert.Equal(t, int64(99), lineErr.ProductID)
	})

	t.Run("variant of another product", func(t *testing.T) {
		_, _, err := BuildItems(products, variants, []Line{
			{ProductID: 2, VariantID: 10, Quantity: 1},
		})
		assert.ErrorIs(t, err, ErrVariantNotFound)
	})

	t.Run("unavailable product", func(t *testing.T) {
		p, v := catalog()
		p[2].IsAvailable = false
		_, _, err := BuildItems(p, v, []Line{{ProductID: 2, Quantity: 1}})
		assert.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		_, _, err := BuildItems(products, variants, []Line{
			{ProductID: 2, Quantity: 4},
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("variant stock checked not product stock", func(t *testing.T) {
		_, _, err := BuildItems(products, variants, []Line{
			{ProductID: 1, VariantID: 10, Quantity: 6},
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("bad quantity", func(t *testing.T) {
		_, _, err := BuildItems(products, variants, []Line{
			{ProductID: 1, Quantity: 0},
		})
		assert.ErrorIs(t, err, ErrBadQuantity)
	})
}

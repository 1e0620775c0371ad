package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revline/revline/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestNewViewEmptyCart(t *testing.T) {
	view := NewView(nil, nil, nil)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.TotalItems)
	assert.Equal(t, "0.00", view.TotalPrice.StringFixed(2))
}

func TestNewViewComputesTotals(t *testing.T) {
	products := map[int64]*domain.Product{
		1: {ID: 1, Price: dec("1000.00")},
		2: {ID: 2, Price: dec("25.00")},
	}
	variants := map[int64]*domain.ProductVariant{
		10: {ID: 10, ProductId: 1, PriceModifier: dec("-200.00")},
	}
	items := []domain.CartItem{
		{ID: 1, ProductId: 1, VariantId: 10, Quantity: 2},
		{ID: 2, ProductId: 2, Quantity: 3},
	}

	view := NewView(items, products, variants)
	require.Len(t, view.Items, 2)
	assert.Equal(t, 5, view.TotalItems)
	assert.Equal(t, "800.00", view.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "1600.00", view.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "1675.00", view.TotalPrice.StringFixed(2))
}

func TestNewViewSkipsOrphanedItems(t *testing.T) {
	items := []domain.CartItem{{ID: 1, ProductId: 99, Quantity: 2}}
	view := NewView(items, map[int64]*domain.Product{}, nil)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.TotalItems)
}

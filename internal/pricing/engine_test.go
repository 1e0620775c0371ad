package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/revline/revline/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestEffectiveUnitPrice(t *testing.T) {
	product := &domain.Product{Price: dec("1000.00")}

	t.Run("no variant", func(t *testing.T) {
		got := EffectiveUnitPrice(product, nil)
		assert.True(t, got.Equal(dec("1000.00")), got.String())
	})

	t.Run("negative modifier", func(t *testing.T) {
		variant := &domain.ProductVariant{PriceModifier: dec("-200.00")}
		got := EffectiveUnitPrice(product, variant)
		assert.True(t, got.Equal(dec("800.00")), got.String())
	})

	t.Run("positive modifier", func(t *testing.T) {
		variant := &domain.ProductVariant{PriceModifier: dec("150.50")}
		got := EffectiveUnitPrice(product, variant)
		assert.True(t, got.Equal(dec("1150.50")), got.String())
	})

	t.Run("clamped at zero", func(t *testing.T) {
		variant := &domain.ProductVariant{PriceModifier: dec("-1200.00")}
		got := EffectiveUnitPrice(product, variant)
		assert.True(t, got.Equal(decimal.Zero), got.String())
	})
}

func TestLineSubtotal(t *testing.T) {
	product := &domain.Product{Price: dec("99.99")}
	got := LineSubtotal(product, nil, 3)
	assert.Equal(t, "299.97", got.StringFixed(2))
}

func TestOrderTotal(t *testing.T) {
	t.Run("empty order", func(t *testing.T) {
		got := OrderTotal(nil)
		assert.True(t, got.Equal(decimal.Zero))
	})

	t.Run("sums frozen prices", func(t *testing.T) {
		items := []domain.OrderItem{
			{Price: dec("800.00"), Quantity: 1},
			{Price: dec("49.90"), Quantity: 2},
		}
		got := OrderTotal(items)
		assert.Equal(t, "899.80", got.StringFixed(2))
	})

	t.Run("ignores current catalog prices", func(t *testing.T) {
		// The frozen item price is authoritative even when it no longer
		// matches any product.
		items := []domain.OrderItem{{ProductId: 42, Price: dec("10.00"), Quantity: 5}}
		got := OrderTotal(items)
		assert.Equal(t, "50.00", got.StringFixed(2))
	})
}

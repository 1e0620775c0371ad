package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/revline/revline/internal/domain"
)

// All monetary math goes through decimal.Decimal; results are normalized
// to 2 fractional digits at the edges (RoundBank keeps repeated additions
// drift-free).

// EffectiveUnitPrice returns the unit price of a product, with the variant
// modifier applied when a variant is selected. A negative result is clamped
// to zero: write-time validation rejects such variants, but the read path
// never returns a negative price.
func EffectiveUnitPrice(product *domain.Product, variant *domain.ProductVariant) decimal.Decimal {
	price := product.Price
	if variant != nil {
		price = price.Add(variant.PriceModifier)
	}
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// LineSubtotal returns effective unit price multiplied by quantity.
func LineSubtotal(product *domain.Product, variant *domain.ProductVariant, quantity int) decimal.Decimal {
	return EffectiveUnitPrice(product, variant).Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderTotal sums frozen item prices times quantities. It never consults
// the current catalog, so later price changes cannot alter the total.
func OrderTotal(items []domain.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.RoundBank(2)
}

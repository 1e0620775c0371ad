package cart

import (
	"github.com/shopspring/decimal"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/pricing"
)

// ItemView is one cart line with its computed unit price and subtotal.
type ItemView struct {
	ID        int64                  `json:"id,string"`
	Product   *domain.Product        `json:"product"`
	Variant   *domain.ProductVariant `json:"variant,omitempty"`
	Quantity  int                    `json:"quantity"`
	UnitPrice decimal.Decimal        `json:"unit_price"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
}

// View is the materialized cart. TotalItems and TotalPrice are derived
// from the lines on every call, never stored.
type View struct {
	Items      []ItemView      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewView computes a cart view from raw rows. Items whose product has
// disappeared from the catalog are skipped rather than priced at zero.
func NewView(items []domain.CartItem, products map[int64]*domain.Product, variants map[int64]*domain.ProductVariant) *View {
	view := &View{
		Items:      make([]ItemView, 0, len(items)),
		TotalPrice: decimal.Zero,
	}
	for _, item := range items {
		product, ok := products[item.ProductId]
		if !ok {
			continue
		}
		var variant *domain.ProductVariant
		if item.VariantId != 0 {
			variant = variants[item.VariantId]
		}
		unit := pricing.EffectiveUnitPrice(product, variant)
		subtotal := pricing.LineSubtotal(product, variant, item.Quantity)
		view.Items = append(view.Items, ItemView{
			ID:        item.ID,
			Product:   product,
			Variant:   variant,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			Subtotal:  subtotal,
		})
		view.TotalItems += item.Quantity
		view.TotalPrice = view.TotalPrice.Add(subtotal)
	}
	view.TotalPrice = view.TotalPrice.RoundBank(2)
	return view
}

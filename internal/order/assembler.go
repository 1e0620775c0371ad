// Package order assembles immutable purchase snapshots. Line validation
// and price freezing are pure; persistence happens in Service inside one
// transaction.
package order

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/pricing"
)

var (
	ErrBadQuantity        = errors.New("quantity must be at least 1")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrVariantNotFound    = errors.New("variant not found for product")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyOrder         = errors.New("order has no items")
)

// LineError ties a validation failure to the offending request line.
type LineError struct {
	ProductID int64
	Err       error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("product %d: %s", e.ProductID, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Line is one requested (product, variant, quantity) tuple.
type Line struct {
	ProductID int64 `json:"product_id,string" validate:"required"`
	VariantID int64 `json:"variant_id,string"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// CustomerInfo is the delivery/contact payload copied onto the order.
type CustomerInfo struct {
	FirstName       string `json:"first_name" validate:"required,max=100"`
	LastName        string `json:"last_name" validate:"max=100"`
	MiddleName      string `json:"middle_name" validate:"max=100"`
	Phone           string `json:"phone" validate:"required,max=20"`
	DeliveryMethod  string `json:"delivery_method" validate:"omitempty,oneof=delivery pickup"`
	DeliveryAddress string `json:"delivery_address"`
	Notes           string `json:"notes"`
}

// BuildItems validates requested lines against the fetched catalog rows
// and freezes each line's effective unit price. The first invalid line
// fails the whole build. The returned total is the exact sum of frozen
// subtotals.
func BuildItems(products map[int64]*domain.Product, variants map[int64]*domain.ProductVariant, lines []Line) ([]domain.OrderItem, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, ErrEmptyOrder
	}

	now := time.Now()
	items := make([]domain.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, decimal.Zero, &LineError{ProductID: line.ProductID, Err: ErrBadQuantity}
		}
		product, ok := products[line.ProductID]
		if !ok {
			return nil, decimal.Zero, &LineError{ProductID: line.ProductID, Err: ErrProductNotFound}
		}
		if !product.IsAvailable {
			return nil, decimal.Zero, &LineError{ProductID: line.ProductID, Err: ErrProductUnavailable}
		}

		var variant *domain.ProductVariant
		if line.VariantID != 0 {
			variant, ok = variants[line.VariantID]
			if !ok || variant.ProductId != product.ID {
				return nil, decimal.Zero, &LineError{ProductID: line.ProductID, Err: ErrVariantNotFound}
			}
			if !variant.IsAvailable {
				return nil, decimal.Zero, &LineError{ProductID: line.ProductID, Err: ErrProductUnavailable}
			}
			if line.Quantity > variant.StockQuantity {
				return nil, decimal.Zero, &LineError{ProductID: line.ProductID, Err: ErrInsufficientStock}
			}
		} else if line.Quantity > product.StockQuantity {
			return nil, decimal.Zero, &LineError{ProductID: line.ProductID, Err: ErrInsufficientStock}
		}

		price := pricing.EffectiveUnitPrice(product, variant)
		items = append(items, domain.OrderItem{
			ProductId: product.ID,
			VariantId: line.VariantID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			Price:     price,
			CreatedAt: now,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return items, total.RoundBank(2), nil
}

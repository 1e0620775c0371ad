package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoCode is a discount token with temporal and usage constraints.
// DiscountPercent takes precedence over DiscountAmount when both are set.
// UsedCount is only ever changed through an atomic guarded increment.
type PromoCode struct {
	ID              int64           `json:"id,string" form:"id"`
	Code            string          `gorm:"size:50;uniqueIndex" json:"code" form:"code"`
	Description     string          `json:"description" form:"description"`
	DiscountPercent int             `json:"discount_percent" form:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_amount" form:"discount_amount"`
	MinOrderAmount  decimal.Decimal `gorm:"type:decimal(10,2)" json:"min_order_amount" form:"min_order_amount"`
	MaxUses         int             `json:"max_uses" form:"max_uses"`
	UsedCount       int             `json:"used_count" form:"used_count"`
	ValidFrom       time.Time       `json:"valid_from" form:"valid_from"`
	ValidUntil      time.Time       `json:"valid_until" form:"valid_until"`
	IsActive        bool            `json:"is_active" form:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (PromoCode) TableName() string {
	return "promo_code"
}

// Package promo validates discount codes and applies their discounts.
// Validate is read-only: redeeming (the used_count increment) is a separate
// guarded update performed by order finalization.
package promo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/revline/revline/internal/domain"
)

// ErrorKind identifies why a promo code was rejected.
type ErrorKind string

const (
	KindInactive     ErrorKind = "inactive"
	KindExhausted    ErrorKind = "exhausted"
	KindNotYetValid  ErrorKind = "not_yet_valid"
	KindExpired      ErrorKind = "expired"
	KindBelowMinimum ErrorKind = "below_minimum"
)

// Error is a typed promo rejection.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// AppliedDiscount is the result of a successful validation.
type AppliedDiscount struct {
	Code           string          `json:"code"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Discount       decimal.Decimal `json:"discount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}

var oneHundred = decimal.NewFromInt(100)

// Validate runs the promo state machine against an order amount. Checks
// run in a fixed order and the first failure wins: inactive, exhausted,
// not yet started, ended, below minimum. On success the discount is
// computed with percent taking precedence over the fixed amount; a promo
// granting nothing is still valid. The final amount never goes negative.
func Validate(p *domain.PromoCode, now time.Time, orderAmount decimal.Decimal) (AppliedDiscount, error) {
	if !p.IsActive {
		return AppliedDiscount{}, &Error{Kind: KindInactive, Message: "promo code is not active"}
	}
	if p.UsedCount >= p.MaxUses {
		return AppliedDiscount{}, &Error{Kind: KindExhausted, Message: "promo code usage limit reached"}
	}
	if now.Before(p.ValidFrom) {
		return AppliedDiscount{}, &Error{Kind: KindNotYetValid, Message: "promo code is not valid yet"}
	}
	if now.After(p.ValidUntil) {
		return AppliedDiscount{}, &Error{Kind: KindExpired, Message: "promo code has expired"}
	}
	if orderAmount.LessThan(p.MinOrderAmount) {
		return AppliedDiscount{}, &Error{
			Kind:    KindBelowMinimum,
			Message: fmt.Sprintf("order amount is below the minimum of %s", p.MinOrderAmount.StringFixed(2)),
		}
	}

	var discount decimal.Decimal
	switch {
	case p.DiscountPercent > 0:
		discount = orderAmount.Mul(decimal.NewFromInt(int64(p.DiscountPercent))).Div(oneHundred).RoundBank(2)
	case p.DiscountAmount.IsPositive():
		discount = p.DiscountAmount
	default:
		discount = decimal.Zero
	}

	final := orderAmount.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return AppliedDiscount{
		Code:           p.Code,
		OriginalAmount: orderAmount,
		Discount:       discount,
		FinalAmount:    final,
	}, nil
}

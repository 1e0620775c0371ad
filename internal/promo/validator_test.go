package promo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revline/revline/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func activeCode() *domain.PromoCode {
	now := time.Now()
	return &domain.PromoCode{
		ID:              1,
		Code:            "SPRING10",
		DiscountPercent: 10,
		MinOrderAmount:  dec("500.00"),
		MaxUses:         100,
		UsedCount:       0,
		ValidFrom:       now.Add(-time.Hour),
		ValidUntil:      now.Add(time.Hour),
		IsActive:        true,
	}
}

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var promoErr *Error
	require.ErrorAs(t, err, &promoErr)
	return promoErr.Kind
}

func TestValidatePercentDiscount(t *testing.T) {
	applied, err := Validate(activeCode(), time.Now(), dec("1000.00"))
	require.NoError(t, err)
	assert.Equal(t, "SPRING10", applied.Code)
	assert.Equal(t, "1000.00", applied.OriginalAmount.StringFixed(2))
	assert.Equal(t, "100.00", applied.Discount.StringFixed(2))
	assert.Equal(t, "900.00", applied.FinalAmount.StringFixed(2))
}

func TestValidateFixedDiscount(t *testing.T) {
	p := activeCode()
	p.DiscountPercent = 0
	p.DiscountAmount = dec("50.00")

	applied, err := Validate(p, time.Now(), dec("600.00"))
	require.NoError(t, err)
	assert.Equal(t, "550.00", applied.FinalAmount.StringFixed(2))
}

func TestValidatePercentBeatsFixed(t *testing.T) {
	p := activeCode()
	p.DiscountAmount = dec("999.00")

	applied, err := Validate(p, time.Now(), dec("1000.00"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", applied.Discount.StringFixed(2))
}

func TestValidateZeroDiscountStillValid(t *testing.T) {
	p := activeCode()
	p.DiscountPercent = 0

	applied, err := Validate(p, time.Now(), dec("600.00"))
	require.NoError(t, err)
	assert.True(t, applied.Discount.IsZero())
	assert.Equal(t, "600.00", applied.FinalAmount.StringFixed(2))
}

func TestValidateFinalNeverNegative(t *testing.T) {
	p := activeCode()
	p.DiscountPercent = 0
	p.DiscountAmount = dec("2000.00")

	applied, err := Validate(p, time.Now(), dec("600.00"))
	require.NoError(t, err)
	assert.True(t, applied.FinalAmount.IsZero())
}

func TestValidateRejections(t *testing.T) {
	now := time.Now()

	t.Run("inactive", func(t *testing.T) {
		p := activeCode()
		p.IsActive = false
		_, err := Validate(p, now, dec("1000.00"))
		assert.Equal(t, KindInactive, kindOf(t, err))
	})

	t.Run("exhausted", func(t *testing.T) {
		p := activeCode()
		p.UsedCount = p.MaxUses
		_, err := Validate(p, now, dec("1000.00"))
		assert.Equal(t, KindExhausted, kindOf(t, err))
	})

	t.Run("not yet valid", func(t *testing.T) {
		p := activeCode()
		p.ValidFrom = now.Add(time.Hour)
		_, err := Validate(p, now, dec("1000.00"))
		assert.Equal(t, KindNotYetValid, kindOf(t, err))
	})

	t.Run("expired", func(t *testing.T) {
		p := activeCode()
		p.ValidUntil = now.Add(-time.Minute)
		_, err := Validate(p, now, dec("1000.00"))
		assert.Equal(t, KindExpired, kindOf(t, err))
	})

	t.Run("below minimum", func(t *testing.T) {
		p := activeCode()
		_, err := Validate(p, now, dec("499.99"))
		assert.Equal(t, KindBelowMinimum, kindOf(t, err))
		assert.Contains(t, err.Error(), "500.00")
	})
}

// The checks run in a fixed order; a code failing several of them reports
// the first failure.
func TestValidateFirstFailureWins(t *testing.T) {
	now := time.Now()
	p := activeCode()
	p.IsActive = false
	p.UsedCount = p.MaxUses
	p.ValidUntil = now.Add(-time.Hour)

	_, err := Validate(p, now, dec("1.00"))
	assert.Equal(t, KindInactive, kindOf(t, err))
}

func TestValidateIsPure(t *testing.T) {
	p := activeCode()
	before := *p
	_, err := Validate(p, time.Now(), dec("1000.00"))
	require.NoError(t, err)
	assert.Equal(t, before, *p)
}

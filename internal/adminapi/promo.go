package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/promo"
	"github.com/revline/revline/internal/webserver"
	"github.com/revline/revline/pkg/common"
)

type promoValidatePayload struct {
	Code        string `json:"code" validate:"required,max=50"`
	OrderAmount string `json:"order_amount" validate:"required"`
}

type promoCreatePayload struct {
	Code            string `json:"code" validate:"required,min=3,max=50"`
	Description     string `json:"description"`
	DiscountPercent int    `json:"discount_percent" validate:"min=0,max=100"`
	DiscountAmount  string `json:"discount_amount"`
	MinOrderAmount  string `json:"min_order_amount"`
	MaxUses         int    `json:"max_uses" validate:"required,min=1"`
	ValidFrom       string `json:"valid_from" validate:"required"`
	ValidUntil      string `json:"valid_until" validate:"required"`
	IsActive        bool   `json:"is_active"`
}

func registerPromoRoutes() {
	webserver.PubPOST("/promo/validate", validatePromo)
	webserver.ApiGET("/promo", listPromoCodes)
	webserver.ApiPOST("/promo", createPromoCode)
}

// validatePromo is the dry-run check used by the cart page: it reports the
// would-be discount without consuming a use.
func validatePromo(c echo.Context) error {
	var payload promoValidatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse promo request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Promo request validation failed", err.Error())
	}
	amount, err := decimal.NewFromString(payload.OrderAmount)
	if err != nil || amount.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Order amount must be a non-negative decimal", nil)
	}

	repo := promo.NewGormRepository(GetDB(c))
	pc, err := repo.GetByCode(c.Request().Context(), strings.TrimSpace(payload.Code))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ok(c, map[string]interface{}{
			"valid":  false,
			"reason": string(promo.KindInactive),
			"error":  "promo code not found",
		})
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query promo code", nil)
	}

	applied, err := promo.Validate(pc, time.Now(), amount)
	var promoErr *promo.Error
	if errors.As(err, &promoErr) {
		return ok(c, map[string]interface{}{
			"valid":  false,
			"reason": string(promoErr.Kind),
			"error":  promoErr.Message,
		})
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error", nil)
	}

	return ok(c, map[string]interface{}{
		"valid":             true,
		"promo_code":        applied.Code,
		"original_amount":   applied.OriginalAmount,
		"discount":          applied.Discount,
		"discounted_amount": applied.FinalAmount,
	})
}

func listPromoCodes(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	page, pageSize := parsePagination(c)
	db := GetDB(c).Model(&domain.PromoCode{})
	if active := c.QueryParam("active"); active == "true" {
		db = db.Where("is_active = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query promo codes", err.Error())
	}
	var rows []domain.PromoCode
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query promo codes", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func createPromoCode(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	var payload promoCreatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse promo code", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Promo code validation failed", err.Error())
	}

	validFrom, err := time.Parse(time.RFC3339, payload.ValidFrom)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "valid_from must be RFC3339", nil)
	}
	validUntil, err := time.Parse(time.RFC3339, payload.ValidUntil)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "valid_until must be RFC3339", nil)
	}
	if !validUntil.After(validFrom) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "valid_until must be after valid_from", nil)
	}

	discountAmount := decimal.Zero
	if payload.DiscountAmount != "" {
		discountAmount, err = decimal.NewFromString(payload.DiscountAmount)
		if err != nil || discountAmount.IsNegative() {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "discount_amount must be a non-negative decimal", nil)
		}
	}
	minOrder := decimal.Zero
	if payload.MinOrderAmount != "" {
		minOrder, err = decimal.NewFromString(payload.MinOrderAmount)
		if err != nil || minOrder.IsNegative() {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "min_order_amount must be a non-negative decimal", nil)
		}
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))
	var count int64
	GetDB(c).Model(&domain.PromoCode{}).Where("code = ?", code).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "CODE_TAKEN", "Promo code already exists", nil)
	}

	now := time.Now()
	pc := domain.PromoCode{
		ID:              common.UUIDint64(),
		Code:            code,
		Description:     payload.Description,
		DiscountPercent: payload.DiscountPercent,
		DiscountAmount:  discountAmount.RoundBank(2),
		MinOrderAmount:  minOrder.RoundBank(2),
		MaxUses:         payload.MaxUses,
		UsedCount:       0,
		ValidFrom:       validFrom,
		ValidUntil:      validUntil,
		IsActive:        payload.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := GetDB(c).Create(&pc).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create promo code", err.Error())
	}
	return ok(c, pc)
}

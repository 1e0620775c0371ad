package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/revline/revline/internal/cart"
	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/order"
	"github.com/revline/revline/internal/promo"
	"github.com/revline/revline/internal/webserver"
)

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}

// The envelope code is always a string: "OK" on success, a symbolic error
// code on failure.
func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": "OK",
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":      "OK",
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func paramInt64(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func requireStaff(c echo.Context) error {
	level := webserver.CurrentLevel(c)
	if level != domain.LevelStaff && level != domain.LevelSuper {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Staff access required", nil)
	}
	return nil
}

// failFromError maps core domain errors onto protocol responses. Unknown
// errors become a 500 without leaking internals.
func failFromError(c echo.Context, err error) error {
	var promoErr *promo.Error
	if errors.As(err, &promoErr) {
		return fail(c, http.StatusBadRequest, "PROMO_"+string(promoErr.Kind), promoErr.Message, nil)
	}

	var lineErr *order.LineError
	if errors.As(err, &lineErr) {
		status := http.StatusBadRequest
		code := "INVALID_REQUEST"
		switch {
		case errors.Is(err, order.ErrProductNotFound), errors.Is(err, order.ErrVariantNotFound):
			status, code = http.StatusNotFound, "NOT_FOUND"
		case errors.Is(err, order.ErrInsufficientStock):
			status, code = http.StatusConflict, "INSUFFICIENT_STOCK"
		case errors.Is(err, order.ErrProductUnavailable):
			status, code = http.StatusConflict, "PRODUCT_UNAVAILABLE"
		}
		return fail(c, status, code, lineErr.Error(), map[string]interface{}{"product_id": lineErr.ProductID})
	}

	switch {
	case errors.Is(err, cart.ErrQuantityInvalid), errors.Is(err, order.ErrBadQuantity),
		errors.Is(err, order.ErrEmptyOrder), errors.Is(err, order.ErrInvalidStatus):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, cart.ErrVariantNotFound),
		errors.Is(err, cart.ErrItemNotFound), errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, cart.ErrNotOwner):
		return fail(c, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, order.ErrInvalidTransition):
		return fail(c, http.StatusConflict, "INVALID_TRANSITION", err.Error(), nil)
	case errors.Is(err, promo.ErrRedeemConflict):
		return fail(c, http.StatusConflict, "PROMO_exhausted", err.Error(), nil)
	}
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error", nil)
}

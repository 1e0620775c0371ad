package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/revline/revline/internal/cart"
	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/mailer"
	"github.com/revline/revline/internal/order"
	"github.com/revline/revline/internal/webserver"
	"github.com/revline/revline/pkg/common"
)

type orderCreatePayload struct {
	order.CustomerInfo
	Items     []order.Line `json:"items"`
	PromoCode string       `json:"promo_code" validate:"max=50"`
}

type orderStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

func registerOrderRoutes() {
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPATCH("/orders/:id/status", updateOrderStatus)
}

// createOrder checks out either an explicit item list or, when the list is
// empty, the caller's current cart. A successful cart checkout empties the
// cart.
func createOrder(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	var payload orderCreatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Order validation failed", err.Error())
	}

	ctx := c.Request().Context()
	fromCart := len(payload.Items) == 0
	if fromCart {
		view, err := cart.NewService(GetDB(c)).GetCart(ctx, userID)
		if err != nil {
			return failFromError(c, err)
		}
		for _, item := range view.Items {
			line := order.Line{ProductID: item.Product.ID, Quantity: item.Quantity}
			if item.Variant != nil {
				line.VariantID = item.Variant.ID
			}
			payload.Items = append(payload.Items, line)
		}
	}

	ord, err := order.NewService(GetDB(c)).CreateOrder(ctx, userID, payload.CustomerInfo, payload.Items, strings.TrimSpace(payload.PromoCode))
	if err != nil {
		return failFromError(c, err)
	}

	if fromCart {
		if err := cart.NewService(GetDB(c)).Clear(ctx, userID); err != nil {
			// The order is already committed; an unemptied cart is an
			// annoyance, not a failure.
			zap.L().Warn("cart clear after checkout failed", zap.Error(err))
		}
	}

	var user domain.User
	if GetDB(c).First(&user, userID).Error == nil {
		mailer.SendOrderConfirmation(user.Email, ord)
	}
	return ok(c, ord)
}

// listOrders returns the caller's own orders; staff see everyone's and may
// filter by status or user.
func listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)
	userID := webserver.CurrentUserID(c)
	level := webserver.CurrentLevel(c)

	db := GetDB(c).Model(&domain.Order{})
	if level == domain.LevelStaff || level == domain.LevelSuper {
		if uid := strings.TrimSpace(c.QueryParam("user_id")); uid != "" {
			db = db.Where("user_id = ?", uid)
		}
	} else {
		db = db.Where("user_id = ?", userID)
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	var rows []domain.Order
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getOrder(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	ord, items, err := order.NewService(GetDB(c)).GetOrder(c.Request().Context(), id)
	if err != nil {
		return failFromError(c, err)
	}

	level := webserver.CurrentLevel(c)
	if ord.UserId != webserver.CurrentUserID(c) && level != domain.LevelStaff && level != domain.LevelSuper {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Order belongs to another user", nil)
	}
	return ok(c, map[string]interface{}{
		"order": ord,
		"items": items,
	})
}

// updateOrderStatus is staff-only; every change lands in the audit log.
func updateOrderStatus(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Status validation failed", err.Error())
	}

	ord, err := order.NewService(GetDB(c)).UpdateStatus(c.Request().Context(), id, payload.Status)
	if err != nil {
		return failFromError(c, err)
	}

	claims := webserver.Claims(c)
	GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   claims.Username,
		OprIp:     c.RealIP(),
		OptAction: "order_status_update",
		OptDesc:   "order " + c.Param("id") + " -> " + payload.Status,
		OptTime:   time.Now(),
	})

	var user domain.User
	if GetDB(c).First(&user, ord.UserId).Error == nil {
		mailer.SendStatusUpdate(user.Email, ord)
	}
	return ok(c, ord)
}

package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/revline/revline/internal/cart"
	"github.com/revline/revline/internal/webserver"
)

type cartAddPayload struct {
	ProductId int64 `json:"product_id,string" validate:"required"`
	VariantId int64 `json:"variant_id,string"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

type cartQuantityPayload struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart/items", addCartItem)
	webserver.ApiPUT("/cart/items/:id", updateCartItem)
	webserver.ApiDELETE("/cart/items/:id", removeCartItem)
	webserver.ApiDELETE("/cart", clearCart)
}

func getCart(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	view, err := cart.NewService(GetDB(c)).GetCart(c.Request().Context(), userID)
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, view)
}

func addCartItem(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	var payload cartAddPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cart item validation failed", err.Error())
	}

	item, err := cart.NewService(GetDB(c)).AddItem(c.Request().Context(), userID, payload.ProductId, payload.VariantId, payload.Quantity)
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, item)
}

func updateCartItem(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart item ID", nil)
	}
	var payload cartQuantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity validation failed", err.Error())
	}

	svc := cart.NewService(GetDB(c))
	if err := svc.UpdateQuantity(c.Request().Context(), userID, id, payload.Quantity); err != nil {
		return failFromError(c, err)
	}
	view, err := svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, view)
}

func removeCartItem(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart item ID", nil)
	}
	svc := cart.NewService(GetDB(c))
	if err := svc.RemoveItem(c.Request().Context(), userID, id); err != nil {
		return failFromError(c, err)
	}
	view, err := svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, view)
}

func clearCart(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	if err := cart.NewService(GetDB(c)).Clear(c.Request().Context(), userID); err != nil {
		return failFromError(c, err)
	}
	return ok(c, map[string]interface{}{"cleared": true})
}

package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/webserver"
	"github.com/revline/revline/pkg/common"
)

type productPayload struct {
	CategoryId  int64  `json:"category_id,string"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Brand       string `json:"brand" validate:"max=50"`
	ProductType string `json:"product_type" validate:"omitempty,oneof=sticker clothing accessory other"`
	Price       string `json:"price" validate:"required"`
	Image       string `json:"image" validate:"max=1024"`
	StockQty    int    `json:"stock_quantity" validate:"min=0"`
	IsAvailable bool   `json:"is_available"`
	IsFeatured  bool   `json:"is_featured"`
}

type variantPayload struct {
	Size          string `json:"size" validate:"max=10"`
	Color         string `json:"color" validate:"max=50"`
	ColorHex      string `json:"color_hex" validate:"max=7"`
	StockQty      int    `json:"stock_quantity" validate:"min=0"`
	PriceModifier string `json:"price_modifier"`
	IsAvailable   bool   `json:"is_available"`
}

func registerShopRoutes() {
	webserver.PubGET("/shop/categories", listCategories)
	webserver.PubGET("/shop/products", listProducts)
	webserver.PubGET("/shop/products/:id", getProduct)
	webserver.ApiPOST("/shop/products", createProduct)
	webserver.ApiPUT("/shop/products/:id", updateProduct)
	webserver.ApiDELETE("/shop/products/:id", deleteProduct)
	webserver.ApiPOST("/shop/products/:id/variants", createVariant)
}

func listCategories(c echo.Context) error {
	var rows []domain.ProductCategory
	if err := GetDB(c).
		Where("is_active = ?", true).
		Order("sort ASC, name ASC").
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, rows)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"price":      "price",
		"created_at": "created_at",
	}
	sortCol, ok2 := allowed[strings.TrimSpace(c.QueryParam("sort"))]
	if !ok2 {
		sortCol = "created_at"
	}
	sortOrder := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}

	db := GetDB(c).Model(&domain.Product{}).Where("is_available = ?", true)
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("name ILIKE ? OR description ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if brand := strings.TrimSpace(c.QueryParam("brand")); brand != "" {
		db = db.Where("brand = ?", brand)
	}
	if ptype := strings.TrimSpace(c.QueryParam("product_type")); ptype != "" {
		db = db.Where("product_type = ?", ptype)
	}
	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		if id, err := strconv.ParseInt(cat, 10, 64); err == nil {
			db = db.Where("category_id = ?", id)
		}
	}
	if c.QueryParam("featured") == "true" {
		db = db.Where("is_featured = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order("is_featured DESC, " + sortCol + " " + sortOrder).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ? AND is_available = ?", id, true).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	var variants []domain.ProductVariant
	GetDB(c).Where("product_id = ?", p.ID).Order("size ASC, color ASC").Find(&variants)
	return ok(c, map[string]interface{}{
		"product":  p,
		"variants": variants,
	})
}

func createProduct(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product validation failed", err.Error())
	}
	price, err := decimal.NewFromString(payload.Price)
	if err != nil || price.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must be a non-negative decimal", nil)
	}

	now := time.Now()
	p := domain.Product{
		ID:            common.UUIDint64(),
		CategoryId:    payload.CategoryId,
		Name:          strings.TrimSpace(payload.Name),
		Description:   payload.Description,
		Brand:         payload.Brand,
		ProductType:   payload.ProductType,
		Price:         price.RoundBank(2),
		Image:         strings.TrimSpace(payload.Image),
		StockQuantity: payload.StockQty,
		IsAvailable:   payload.IsAvailable,
		IsFeatured:    payload.IsFeatured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product validation failed", err.Error())
	}
	price, err := decimal.NewFromString(payload.Price)
	if err != nil || price.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must be a non-negative decimal", nil)
	}

	p.CategoryId = payload.CategoryId
	p.Name = strings.TrimSpace(payload.Name)
	p.Description = payload.Description
	p.Brand = payload.Brand
	p.ProductType = payload.ProductType
	p.Price = price.RoundBank(2)
	p.Image = strings.TrimSpace(payload.Image)
	p.StockQuantity = payload.StockQty
	p.IsAvailable = payload.IsAvailable
	p.IsFeatured = payload.IsFeatured
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).Where("product_id = ?", id).Delete(&domain.ProductVariant{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete variants", err.Error())
	}
	if err := GetDB(c).Delete(&domain.Product{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

// createVariant rejects a modifier that would push the effective price
// below zero; the pricing engine still clamps on reads as a backstop.
func createVariant(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload variantPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse variant", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Variant validation failed", err.Error())
	}

	modifier := decimal.Zero
	if payload.PriceModifier != "" {
		modifier, err = decimal.NewFromString(payload.PriceModifier)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price modifier must be a decimal", nil)
		}
	}
	if p.Price.Add(modifier).IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price modifier would make the effective price negative", nil)
	}

	now := time.Now()
	v := domain.ProductVariant{
		ID:            common.UUIDint64(),
		ProductId:     p.ID,
		Size:          strings.TrimSpace(payload.Size),
		Color:         strings.TrimSpace(payload.Color),
		ColorHex:      strings.TrimSpace(payload.ColorHex),
		StockQuantity: payload.StockQty,
		PriceModifier: modifier.RoundBank(2),
		IsAvailable:   payload.IsAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := GetDB(c).Create(&v).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create variant", err.Error())
	}
	return ok(c, v)
}

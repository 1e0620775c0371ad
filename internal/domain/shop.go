package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory groups catalog items (stickers, clothing, accessories).
type ProductCategory struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug" form:"slug"`
	Description string    `json:"description" form:"description"`
	Sort        int       `json:"sort" form:"sort"`
	IsActive    bool      `json:"is_active" form:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName Specify table name
func (ProductCategory) TableName() string {
	return "shop_category"
}

// Product is a catalog item. Price is the base unit price; variants add a
// signed modifier on top of it.
type Product struct {
	ID            int64           `json:"id,string" form:"id"`
	CategoryId    int64           `gorm:"index" json:"category_id,string" form:"category_id"`
	Name          string          `gorm:"index" json:"name" form:"name"`
	Description   string          `json:"description" form:"description"`
	Brand         string          `gorm:"size:50" json:"brand" form:"brand"`
	ProductType   string          `gorm:"size:20" json:"product_type" form:"product_type"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2)" json:"price" form:"price"`
	Image         string          `gorm:"size:1024" json:"image" form:"image"`
	StockQuantity int             `json:"stock_quantity" form:"stock_quantity"`
	IsAvailable   bool            `json:"is_available" form:"is_available"`
	IsFeatured    bool            `json:"is_featured" form:"is_featured"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "shop_product"
}

// InStock reports whether the product can currently be sold.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0 && p.IsAvailable
}

// ProductVariant is a priced, stocked sub-SKU (size/color combination).
// PriceModifier is added to the product base price; the pricing engine
// clamps the result at zero.
type ProductVariant struct {
	ID            int64           `json:"id,string" form:"id"`
	ProductId     int64           `gorm:"index;uniqueIndex:uk_variant_product_size_color" json:"product_id,string" form:"product_id"`
	Size          string          `gorm:"size:10;uniqueIndex:uk_variant_product_size_color" json:"size" form:"size"`
	Color         string          `gorm:"size:50;uniqueIndex:uk_variant_product_size_color" json:"color" form:"color"`
	ColorHex      string          `gorm:"size:7" json:"color_hex" form:"color_hex"`
	StockQuantity int             `json:"stock_quantity" form:"stock_quantity"`
	PriceModifier decimal.Decimal `gorm:"type:decimal(10,2)" json:"price_modifier" form:"price_modifier"`
	IsAvailable   bool            `json:"is_available" form:"is_available"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (ProductVariant) TableName() string {
	return "shop_product_variant"
}

// InStock reports whether this variant can currently be sold.
func (v *ProductVariant) InStock() bool {
	return v.StockQuantity > 0 && v.IsAvailable
}

// Cart is the per-user server-side cart (one per user). Totals are always
// computed from items, never stored.
type Cart struct {
	ID        int64     `json:"id,string" form:"id"`
	UserId    int64     `gorm:"uniqueIndex" json:"user_id,string" form:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Cart) TableName() string {
	return "shop_cart"
}

// CartItem references a product and optionally one of its variants.
// VariantId is 0 when no variant is selected; the sentinel keeps the
// composite unique index effective (NULLs never collide in Postgres),
// which is what deduplicates concurrent adds of the same tuple.
type CartItem struct {
	ID        int64     `json:"id,string" form:"id"`
	CartId    int64     `gorm:"index;uniqueIndex:uk_cart_product_variant" json:"cart_id,string" form:"cart_id"`
	ProductId int64     `gorm:"uniqueIndex:uk_cart_product_variant" json:"product_id,string" form:"product_id"`
	VariantId int64     `gorm:"default:0;uniqueIndex:uk_cart_product_variant" json:"variant_id,string" form:"variant_id"`
	Quantity  int       `json:"quantity" form:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CartItem) TableName() string {
	return "shop_cart_item"
}

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Delivery methods
const (
	DeliveryMethodCourier = "delivery"
	DeliveryMethodPickup  = "pickup"
)

// Order is an immutable purchase snapshot; TotalPrice is fixed at creation
// time from frozen item prices.
type Order struct {
	ID                 int64           `json:"id,string" form:"id"`
	UserId             int64           `gorm:"index" json:"user_id,string" form:"user_id"`
	Status             string          `gorm:"size:20;index" json:"status" form:"status"`
	DeliveryMethod     string          `gorm:"size:20" json:"delivery_method" form:"delivery_method"`
	DeliveryAddress    string          `json:"delivery_address" form:"delivery_address"`
	CustomerFirstName  string          `gorm:"size:100" json:"customer_first_name" form:"customer_first_name"`
	CustomerLastName   string          `gorm:"size:100" json:"customer_last_name" form:"customer_last_name"`
	CustomerMiddleName string          `gorm:"size:100" json:"customer_middle_name" form:"customer_middle_name"`
	CustomerPhone      string          `gorm:"size:20" json:"customer_phone" form:"customer_phone"`
	PromoCode          string          `gorm:"size:50" json:"promo_code" form:"promo_code"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_price" form:"total_price"`
	Notes              string          `json:"notes" form:"notes"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "shop_order"
}

// OrderItem freezes the effective unit price at order-creation time so
// later catalog changes never alter historical orders.
type OrderItem struct {
	ID        int64           `json:"id,string" form:"id"`
	OrderId   int64           `gorm:"index" json:"order_id,string" form:"order_id"`
	ProductId int64           `json:"product_id,string" form:"product_id"`
	VariantId int64           `gorm:"default:0" json:"variant_id,string" form:"variant_id"`
	Name      string          `json:"name" form:"name"`
	Quantity  int             `json:"quantity" form:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price" form:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "shop_order_item"
}

// Package cart manages the per-user server-side cart. Adds of the same
// (product, variant) tuple collapse into a quantity increment through a
// single conflict-aware insert, backed by the unique index on
// (cart_id, product_id, variant_id).
package cart

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/revline/revline/internal/domain"
)

var (
	ErrQuantityInvalid = errors.New("quantity must be at least 1")
	ErrProductNotFound = errors.New("product not found or unavailable")
	ErrVariantNotFound = errors.New("product variant not found or unavailable")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrNotOwner        = errors.New("cart item belongs to another user")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// AddItem puts a product (optionally a specific variant, variantID 0 means
// none) into the user's cart. A concurrent add of the same tuple increments
// the existing row instead of duplicating it: the insert carries an
// ON CONFLICT quantity increment, so the read-modify-write is one atomic
// statement.
func (s *Service) AddItem(ctx context.Context, userID, productID, variantID int64, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	var product domain.Product
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_available = ?", productID, true).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	} else if err != nil {
		return nil, err
	}

	if variantID != 0 {
		var variant domain.ProductVariant
		err = s.db.WithContext(ctx).
			Where("id = ? AND product_id = ? AND is_available = ?", variantID, productID, true).
			First(&variant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		} else if err != nil {
			return nil, err
		}
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := domain.CartItem{
		CartId:    cart.ID,
		ProductId: productID,
		VariantId: variantID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}, {Name: "variant_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("shop_cart_item.quantity + ?", quantity),
				"updated_at": now,
			}),
		}).
		Create(&item).Error
	if err != nil {
		return nil, errors.Wrap(err, "cart upsert failed")
	}

	// Re-read: after a conflict the returned struct carries the insert
	// values, not the incremented row.
	var saved domain.CartItem
	err = s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ? AND variant_id = ?", cart.ID, productID, variantID).
		First(&saved).Error
	if err != nil {
		return nil, err
	}

	zap.L().Debug("cart item added",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
		zap.Int64("variant_id", variantID),
		zap.Int("quantity", saved.Quantity))
	return &saved, nil
}

// UpdateQuantity sets the quantity of a cart item owned by the user.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	if quantity < 1 {
		return ErrQuantityInvalid
	}
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		}).Error
}

// RemoveItem deletes a cart item owned by the user.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID int64) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&domain.CartItem{}, item.ID).Error
}

// Clear removes every item from the user's cart (used after checkout).
func (s *Service) Clear(ctx context.Context, userID int64) error {
	var cart domain.Cart
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error
}

// GetCart materializes the user's cart with computed totals. An absent
// cart row is reported as an empty view.
func (s *Service) GetCart(ctx context.Context, userID int64) (*View, error) {
	var cart domain.Cart
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewView(nil, nil, nil), nil
	} else if err != nil {
		return nil, err
	}

	var items []domain.CartItem
	if err := s.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	products, variants, err := s.loadCatalog(ctx, items)
	if err != nil {
		return nil, err
	}
	return NewView(items, products, variants), nil
}

func (s *Service) getOrCreateCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.db.WithContext(ctx).
		Where(domain.Cart{UserId: userID}).
		Attrs(domain.Cart{CreatedAt: time.Now(), UpdatedAt: time.Now()}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ownedItem loads a cart item and fails closed when it belongs to another
// user's cart.
func (s *Service) ownedItem(ctx context.Context, userID, itemID int64) (*domain.CartItem, error) {
	var item domain.CartItem
	err := s.db.WithContext(ctx).First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	} else if err != nil {
		return nil, err
	}
	var cart domain.Cart
	if err := s.db.WithContext(ctx).First(&cart, item.CartId).Error; err != nil {
		return nil, err
	}
	if cart.UserId != userID {
		return nil, ErrNotOwner
	}
	return &item, nil
}

func (s *Service) loadCatalog(ctx context.Context, items []domain.CartItem) (map[int64]*domain.Product, map[int64]*domain.ProductVariant, error) {
	productIDs := make([]int64, 0, len(items))
	variantIDs := make([]int64, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductId)
		if item.VariantId != 0 {
			variantIDs = append(variantIDs, item.VariantId)
		}
	}

	products := make(map[int64]*domain.Product)
	if len(productIDs) > 0 {
		var rows []domain.Product
		if err := s.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&rows).Error; err != nil {
			return nil, nil, err
		}
		for i := range rows {
			products[rows[i].ID] = &rows[i]
		}
	}

	variants := make(map[int64]*domain.ProductVariant)
	if len(variantIDs) > 0 {
		var rows []domain.ProductVariant
		if err := s.db.WithContext(ctx).Where("id IN ?", variantIDs).Find(&rows).Error; err != nil {
			return nil, nil, err
		}
		for i := range rows {
			variants[rows[i].ID] = &rows[i]
		}
	}
	return products, variants, nil
}

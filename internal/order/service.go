package order

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/promo"
	"github.com/revline/revline/pkg/common"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateOrder builds and persists an order in one transaction: line
// validation, frozen-price items, conditional stock decrements, optional
// promo redemption, totals. Any failure rolls the whole thing back so a
// partial order is never visible.
func (s *Service) CreateOrder(ctx context.Context, userID int64, info CustomerInfo, lines []Line, promoCode string) (*domain.Order, error) {
	var created *domain.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, variants, err := fetchCatalog(tx, lines)
		if err != nil {
			return err
		}

		items, total, err := BuildItems(products, variants, lines)
		if err != nil {
			return err
		}

		for _, line := range lines {
			if err := decrementStock(tx, line); err != nil {
				return err
			}
		}

		appliedCode := ""
		if promoCode != "" {
			// The tx-bound repository keeps the redeem inside this
			// transaction so a later failure rolls it back.
			promoRepo := promo.NewGormRepository(tx)
			pc, err := promoRepo.GetByCode(ctx, promoCode)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &promo.Error{Kind: promo.KindInactive, Message: "promo code not found"}
			} else if err != nil {
				return err
			}
			applied, err := promo.Validate(pc, time.Now(), total)
			if err != nil {
				return err
			}
			if err := promoRepo.Redeem(ctx, pc.ID); err != nil {
				return err
			}
			total = applied.FinalAmount
			appliedCode = pc.Code
		}

		deliveryMethod := info.DeliveryMethod
		if deliveryMethod == "" {
			deliveryMethod = domain.DeliveryMethodCourier
		}

		now := time.Now()
		ord := domain.Order{
			ID:                 common.UUIDint64(),
			UserId:             userID,
			Status:             domain.OrderStatusPending,
			DeliveryMethod:     deliveryMethod,
			DeliveryAddress:    info.DeliveryAddress,
			CustomerFirstName:  info.FirstName,
			CustomerLastName:   info.LastName,
			CustomerMiddleName: info.MiddleName,
			CustomerPhone:      info.Phone,
			PromoCode:          appliedCode,
			TotalPrice:         total,
			Notes:              info.Notes,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := tx.Create(&ord).Error; err != nil {
			return errors.Wrap(err, "create order")
		}
		for i := range items {
			items[i].OrderId = ord.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return errors.Wrap(err, "create order items")
		}
		created = &ord
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order created",
		zap.Int64("order_id", created.ID),
		zap.Int64("user_id", userID),
		zap.String("total", created.TotalPrice.StringFixed(2)))
	return created, nil
}

// UpdateStatus moves an order along the status machine. The caller is
// responsible for authorization (staff only).
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, newStatus string) (*domain.Order, error) {
	if !ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}
	var ord domain.Order
	err := s.db.WithContext(ctx).First(&ord, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	} else if err != nil {
		return nil, err
	}
	if !CanTransition(ord.Status, newStatus) {
		return nil, errors.Wrapf(ErrInvalidTransition, "%s -> %s", ord.Status, newStatus)
	}
	err = s.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND status = ?", ord.ID, ord.Status).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	ord.Status = newStatus
	return &ord, nil
}

// GetOrder loads an order with its items.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*domain.Order, []domain.OrderItem, error) {
	var ord domain.Order
	err := s.db.WithContext(ctx).First(&ord, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrOrderNotFound
	} else if err != nil {
		return nil, nil, err
	}
	var items []domain.OrderItem
	if err := s.db.WithContext(ctx).Where("order_id = ?", ord.ID).Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &ord, items, nil
}

// fetchCatalog loads the referenced products and variants inside the
// transaction.
func fetchCatalog(tx *gorm.DB, lines []Line) (map[int64]*domain.Product, map[int64]*domain.ProductVariant, error) {
	productIDs := make([]int64, 0, len(lines))
	variantIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
		if line.VariantID != 0 {
			variantIDs = append(variantIDs, line.VariantID)
		}
	}

	products := make(map[int64]*domain.Product)
	if len(productIDs) > 0 {
		var rows []domain.Product
		if err := tx.Where("id IN ?", productIDs).Find(&rows).Error; err != nil {
			return nil, nil, err
		}
		for i := range rows {
			products[rows[i].ID] = &rows[i]
		}
	}

	variants := make(map[int64]*domain.ProductVariant)
	if len(variantIDs) > 0 {
		var rows []domain.ProductVariant
		if err := tx.Where("id IN ?", variantIDs).Find(&rows).Error; err != nil {
			return nil, nil, err
		}
		for i := range rows {
			variants[rows[i].ID] = &rows[i]
		}
	}
	return products, variants, nil
}

// decrementStock reserves stock with a conditional update; zero rows
// affected means a concurrent order took the remaining stock first.
func decrementStock(tx *gorm.DB, line Line) error {
	if line.VariantID != 0 {
		res := tx.Model(&domain.ProductVariant{}).
			Where("id = ? AND stock_quantity >= ?", line.VariantID, line.Quantity).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &LineError{ProductID: line.ProductID, Err: ErrInsufficientStock}
		}
		return nil
	}
	res := tx.Model(&domain.Product{}).
		Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &LineError{ProductID: line.ProductID, Err: ErrInsufficientStock}
	}
	return nil
}

package promo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/revline/revline/internal/domain"
)

// ErrRedeemConflict is returned when the guarded increment finds the code
// exhausted or disabled. The validate→redeem window is inherently racy, so
// the cap is re-checked here rather than trusted from validation.
var ErrRedeemConflict = errors.New("promo code can no longer be redeemed")

// Repository handles database operations for promo codes.
type Repository interface {
	// GetByCode retrieves a promo code by its unique code string
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)

	// Redeem atomically increments used_count, failing if the cap is hit
	Redeem(ctx context.Context, id int64) error

	// DeactivateExpired disables codes whose validity window has ended
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	var p domain.PromoCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Redeem performs a single conditional UPDATE so concurrent redemptions
// cannot push used_count past max_uses.
func (r *GormRepository) Redeem(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&domain.PromoCode{}).
		Where("id = ? AND is_active = ? AND used_count < max_uses", id, true).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRedeemConflict
	}
	return nil
}

func (r *GormRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.PromoCode{}).
		Where("is_active = ? AND valid_until < ?", true, now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

package app

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "revline-admin"

	var user domain.User
	err := a.gormDB.Where("username = ?", superUsername).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		now := time.Now()
		if err := a.gormDB.Create(&domain.User{
			ID:        common.UUIDint64(),
			Username:  superUsername,
			Email:     "admin@revline.club",
			Password:  string(hashed),
			Level:     domain.LevelSuper,
			Status:    common.ENABLED,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
	}
}

func (a *Application) checkShopCategories() {
	var count int64
	if err := a.gormDB.Model(&domain.ProductCategory{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	defaults := []domain.ProductCategory{
		{Name: "Stickers", Slug: "stickers", Sort: 1, IsActive: true},
		{Name: "Clothing", Slug: "clothing", Sort: 2, IsActive: true},
		{Name: "Accessories", Slug: "accessories", Sort: 3, IsActive: true},
	}
	now := time.Now()
	for i := range defaults {
		defaults[i].ID = common.UUIDint64()
		defaults[i].CreatedAt = now
	}
	if err := a.gormDB.Create(&defaults).Error; err != nil {
		zap.L().Error("failed to seed shop categories", zap.Error(err))
	}
}

func (a *Application) checkDemoPromo() {
	var count int64
	if err := a.gormDB.Model(&domain.PromoCode{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	now := time.Now()
	demo := domain.PromoCode{
		ID:              common.UUIDint64(),
		Code:            "WELCOME10",
		Description:     "10% off your first order",
		DiscountPercent: 10,
		MinOrderAmount:  decimal.NewFromInt(500),
		MaxUses:         1000,
		ValidFrom:       now,
		ValidUntil:      now.AddDate(1, 0, 0),
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := a.gormDB.Create(&demo).Error; err != nil {
		zap.L().Error("failed to seed demo promo code", zap.Error(err))
	}
}

func (a *Application) checkForumCategories() {
	var count int64
	if err := a.gormDB.Model(&domain.ForumCategory{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	defaults := []domain.ForumCategory{
		{Name: "General", Slug: "general", Description: "Anything about cars", Sort: 1, IsActive: true},
		{Name: "Builds", Slug: "builds", Description: "Project and build threads", Sort: 2, IsActive: true},
		{Name: "Marketplace", Slug: "marketplace", Description: "Buy, sell, trade", Sort: 3, IsActive: true},
	}
	now := time.Now()
	for i := range defaults {
		defaults[i].ID = common.UUIDint64()
		defaults[i].CreatedAt = now
	}
	if err := a.gormDB.Create(&defaults).Error; err != nil {
		zap.L().Error("failed to seed forum categories", zap.Error(err))
	}
}

package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/webserver"
	"github.com/revline/revline/pkg/common"
)

type bonusAdjustPayload struct {
	UserId      int64  `json:"user_id,string" validate:"required"`
	Points      int    `json:"points" validate:"required"`
	Description string `json:"description" validate:"required,max=500"`
}

func registerLoyaltyRoutes() {
	webserver.ApiGET("/loyalty/balance", getBonusBalance)
	webserver.ApiGET("/loyalty/transactions", listBonusTransactions)
	webserver.ApiPOST("/loyalty/transactions", createBonusAdjustment)
}

func getBonusBalance(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	var balance int64
	err := GetDB(c).Model(&domain.BonusTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&balance).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query balance", err.Error())
	}
	return ok(c, map[string]interface{}{"balance": balance})
}

func listBonusTransactions(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.BonusTransaction{}).Where("user_id = ?", userID)
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query transactions", err.Error())
	}
	var rows []domain.BonusTransaction
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query transactions", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

// createBonusAdjustment lets staff credit or debit a member's bonus points.
// Earned/spent entries come from the order flow; this endpoint only writes
// manual entries.
func createBonusAdjustment(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	var payload bonusAdjustPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse adjustment", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Adjustment validation failed", err.Error())
	}

	var user domain.User
	if err := GetDB(c).Where("id = ?", payload.UserId).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}

	entry := domain.BonusTransaction{
		ID:              common.UUIDint64(),
		UserId:          payload.UserId,
		Points:          payload.Points,
		TransactionType: domain.BonusManual,
		Description:     strings.TrimSpace(payload.Description),
		CreatedAt:       time.Now(),
	}
	if err := GetDB(c).Create(&entry).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record adjustment", err.Error())
	}
	return ok(c, entry)
}

package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/webserver"
	"github.com/revline/revline/pkg/common"
)

type registerPayload struct {
	Username        string `json:"username" validate:"required,min=3,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	FirstName       string `json:"first_name" validate:"max=100"`
	LastName        string `json:"last_name" validate:"max=100"`
	Phone           string `json:"phone" validate:"max=20"`
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/auth/register", registerUser)
	webserver.PubPOST("/auth/login", loginUser)
}

func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Registration validation failed", err.Error())
	}
	if payload.Password != payload.PasswordConfirm {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Passwords do not match", nil)
	}

	payload.Username = strings.TrimSpace(payload.Username)
	var count int64
	GetDB(c).Model(&domain.User{}).Where("username = ?", payload.Username).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "USERNAME_TAKEN", "Username is already registered", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to hash password", nil)
	}

	now := time.Now()
	user := domain.User{
		ID:        common.UUIDint64(),
		Username:  payload.Username,
		Email:     strings.TrimSpace(payload.Email),
		Password:  string(hashed),
		FirstName: strings.TrimSpace(payload.FirstName),
		LastName:  strings.TrimSpace(payload.LastName),
		Phone:     strings.TrimSpace(payload.Phone),
		Level:     domain.LevelUser,
		Status:    common.ENABLED,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", err.Error())
	}

	zap.L().Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	token, err := webserver.CreateToken(webserver.Config(), user.ID, user.Username, user.Level)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token", nil)
	}
	return ok(c, map[string]interface{}{
		"token": token,
		"user":  profileView(&user, user.ID),
	})
}

func loginUser(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Credentials validation failed", err.Error())
	}

	var user domain.User
	err := GetDB(c).Where("username = ?", strings.TrimSpace(payload.Username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", nil)
	}
	if user.Status != common.ENABLED {
		return fail(c, http.StatusUnauthorized, "ACCOUNT_DISABLED", "Account is disabled", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	GetDB(c).Model(&domain.User{}).Where("id = ?", user.ID).Update("last_login", time.Now())

	token, err := webserver.CreateToken(webserver.Config(), user.ID, user.Username, user.Level)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token", nil)
	}
	return ok(c, map[string]interface{}{
		"token": token,
		"user":  profileView(&user, user.ID),
	})
}

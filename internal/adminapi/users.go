package adminapi

import (
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/visibility"
	"github.com/revline/revline/internal/webserver"
	"github.com/revline/revline/pkg/common"
)

type profileUpdatePayload struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar" validate:"omitempty,max=1024"`
	Instagram *string `json:"instagram" validate:"omitempty,max=200"`
	Telegram  *string `json:"telegram" validate:"omitempty,max=200"`
	Youtube   *string `json:"youtube" validate:"omitempty,max=200"`
	Vk        *string `json:"vk" validate:"omitempty,max=200"`
}

type privacyPayload struct {
	HideEmail     *bool `json:"hide_email"`
	HideName      *bool `json:"hide_name"`
	HideFirstName *bool `json:"hide_first_name"`
	HideLastName  *bool `json:"hide_last_name"`
	HidePhone     *bool `json:"hide_phone"`
}

type carPhotoPayload struct {
	Photo     string `json:"photo" validate:"required,max=1024"`
	Caption   string `json:"caption" validate:"max=200"`
	IsPrimary bool   `json:"is_primary"`
}

type carPayload struct {
	Brand        string `json:"brand" validate:"required,max=100"`
	Model        string `json:"model" validate:"required,max=100"`
	Generation   string `json:"generation" validate:"max=100"`
	Year         int    `json:"year" validate:"required,min=1900,max=2100"`
	LicensePlate string `json:"license_plate" validate:"max=20"`
	Vin          string `json:"vin" validate:"max=17"`
	Color        string `json:"color" validate:"max=50"`
	Photo        string `json:"photo" validate:"max=1024"`
}

// titleBrand normalizes a brand name to "Word Word" form, so "bmw" and
// "BMW" land on the same spelling.
func titleBrand(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func registerUserRoutes() {
	// Profile detail is public: anonymous viewers get the redacted view.
	webserver.PubGET("/users/:id", getUserProfile)
	webserver.ApiGET("/users/me", getOwnProfile)
	webserver.ApiPUT("/users/me", updateOwnProfile)
	webserver.ApiPUT("/users/me/privacy", updateOwnPrivacy)
	webserver.ApiGET("/users/me/cars", listOwnCars)
	webserver.ApiPOST("/users/me/cars", createCar)
	webserver.ApiPUT("/users/me/cars/:id", updateCar)
	webserver.ApiDELETE("/users/me/cars/:id", deleteCar)
	webserver.ApiPOST("/users/me/cars/:id/photos", addCarPhoto)
	webserver.ApiDELETE("/users/me/cars/photos/:id", deleteCarPhoto)
}

// profileView projects a user through the visibility policy for the given
// viewer.
func profileView(u *domain.User, viewerID int64) visibility.ProfileView {
	return visibility.Redact(u, viewerID)
}

func getUserProfile(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	var user domain.User
	if err := GetDB(c).Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}

	viewerID := webserver.OptionalUserID(c)
	view := profileView(&user, viewerID)

	var cars []domain.Car
	GetDB(c).Where("user_id = ?", user.ID).Order("created_at DESC").Find(&cars)

	return ok(c, map[string]interface{}{
		"profile": view,
		"cars":    cars,
	})
}

func getOwnProfile(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	var user domain.User
	if err := GetDB(c).Where("id = ?", userID).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	return ok(c, user)
}

func updateOwnProfile(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	var payload profileUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Profile validation failed", err.Error())
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if payload.Email != nil {
		updates["email"] = strings.TrimSpace(*payload.Email)
	}
	if payload.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*payload.FirstName)
	}
	if payload.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*payload.LastName)
	}
	if payload.Phone != nil {
		updates["phone"] = strings.TrimSpace(*payload.Phone)
	}
	if payload.Bio != nil {
		updates["bio"] = *payload.Bio
	}
	if payload.Avatar != nil {
		updates["avatar"] = *payload.Avatar
	}
	if payload.Instagram != nil {
		updates["instagram"] = strings.TrimSpace(*payload.Instagram)
	}
	if payload.Telegram != nil {
		updates["telegram"] = strings.TrimSpace(*payload.Telegram)
	}
	if payload.Youtube != nil {
		updates["youtube"] = strings.TrimSpace(*payload.Youtube)
	}
	if payload.Vk != nil {
		updates["vk"] = strings.TrimSpace(*payload.Vk)
	}

	if err := GetDB(c).Model(&domain.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update profile", err.Error())
	}

	var user domain.User
	GetDB(c).First(&user, userID)
	return ok(c, user)
}

func updateOwnPrivacy(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	var payload privacyPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse privacy settings", err.Error())
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if payload.HideEmail != nil {
		updates["hide_email"] = *payload.HideEmail
	}
	if payload.HideName != nil {
		updates["hide_name"] = *payload.HideName
	}
	if payload.HideFirstName != nil {
		updates["hide_first_name"] = *payload.HideFirstName
	}
	if payload.HideLastName != nil {
		updates["hide_last_name"] = *payload.HideLastName
	}
	if payload.HidePhone != nil {
		updates["hide_phone"] = *payload.HidePhone
	}

	if err := GetDB(c).Model(&domain.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update privacy settings", err.Error())
	}

	var user domain.User
	GetDB(c).First(&user, userID)
	return ok(c, user)
}

func listOwnCars(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	var cars []domain.Car
	if err := GetDB(c).Where("user_id = ?", userID).Order("created_at DESC").Find(&cars).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query cars", err.Error())
	}
	return ok(c, cars)
}

func createCar(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	var payload carPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse car", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Car validation failed", err.Error())
	}

	car := domain.Car{
		ID:           common.UUIDint64(),
		UserId:       userID,
		Brand:        titleBrand(payload.Brand),
		Model:        strings.TrimSpace(payload.Model),
		Generation:   strings.ToUpper(strings.TrimSpace(payload.Generation)),
		Year:         payload.Year,
		LicensePlate: strings.ToUpper(strings.TrimSpace(payload.LicensePlate)),
		Vin:          strings.ToUpper(strings.TrimSpace(payload.Vin)),
		Color:        strings.TrimSpace(payload.Color),
		Photo:        payload.Photo,
		CreatedAt:    time.Now(),
	}
	if err := GetDB(c).Create(&car).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create car", err.Error())
	}
	return ok(c, car)
}

func updateCar(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID", nil)
	}
	var car domain.Car
	if err := GetDB(c).Where("id = ?", id).First(&car).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Car not found", nil)
	}
	if car.UserId != userID {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Car belongs to another user", nil)
	}

	var payload carPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse car", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Car validation failed", err.Error())
	}

	car.Brand = titleBrand(payload.Brand)
	car.Model = strings.TrimSpace(payload.Model)
	car.Generation = strings.ToUpper(strings.TrimSpace(payload.Generation))
	car.Year = payload.Year
	car.LicensePlate = strings.ToUpper(strings.TrimSpace(payload.LicensePlate))
	car.Vin = strings.ToUpper(strings.TrimSpace(payload.Vin))
	car.Color = strings.TrimSpace(payload.Color)
	car.Photo = payload.Photo

	if err := GetDB(c).Save(&car).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update car", err.Error())
	}
	return ok(c, car)
}

func deleteCar(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID", nil)
	}
	var car domain.Car
	if err := GetDB(c).Where("id = ?", id).First(&car).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Car not found", nil)
	}
	if car.UserId != userID {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Car belongs to another user", nil)
	}
	GetDB(c).Where("car_id = ?", id).Delete(&domain.CarPhoto{})
	if err := GetDB(c).Delete(&domain.Car{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete car", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

func addCarPhoto(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	carID, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID", nil)
	}
	var car domain.Car
	if err := GetDB(c).Where("id = ? AND user_id = ?", carID, userID).First(&car).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Car not found", nil)
	}

	var payload carPhotoPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse photo", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Photo validation failed", err.Error())
	}

	photo := domain.CarPhoto{
		ID:        common.UUIDint64(),
		CarId:     car.ID,
		Photo:     strings.TrimSpace(payload.Photo),
		Caption:   payload.Caption,
		IsPrimary: payload.IsPrimary,
		CreatedAt: time.Now(),
	}
	if payload.IsPrimary {
		// Demote the previous primary so the car keeps at most one.
		if err := GetDB(c).Model(&domain.CarPhoto{}).
			Where("car_id = ? AND is_primary = ?", car.ID, true).
			Update("is_primary", false).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add photo", err.Error())
		}
	}
	if err := GetDB(c).Create(&photo).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add photo", err.Error())
	}
	return ok(c, photo)
}

func deleteCarPhoto(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID", nil)
	}
	var photo domain.CarPhoto
	if err := GetDB(c).First(&photo, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Photo not found", nil)
	}
	var car domain.Car
	if err := GetDB(c).First(&car, photo.CarId).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Car not found", nil)
	}
	if car.UserId != userID {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Photo belongs to another user", nil)
	}
	if err := GetDB(c).Delete(&domain.CarPhoto{}, photo.ID).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete photo", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

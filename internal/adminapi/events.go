package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/webserver"
	"github.com/revline/revline/pkg/common"
)

type eventRegisterPayload struct {
	CarId int64 `json:"car_id,string"`
}

type eventPayload struct {
	Title             string `json:"title" validate:"required,min=3,max=200"`
	Description       string `json:"description"`
	Location          string `json:"location" validate:"required"`
	StartsAt          string `json:"starts_at" validate:"required"`
	RegistrationFrom  string `json:"registration_from" validate:"required"`
	RegistrationUntil string `json:"registration_until" validate:"required"`
	MaxParticipants   int    `json:"max_participants" validate:"min=0"`
	IsActive          bool   `json:"is_active"`
}

func registerEventRoutes() {
	webserver.PubGET("/events", listEvents)
	webserver.PubGET("/events/:id", getEvent)
	webserver.ApiPOST("/events", createEvent)
	webserver.ApiPOST("/events/:id/register", registerForEvent)
	webserver.ApiDELETE("/events/:id/register", cancelEventRegistration)
	webserver.ApiPOST("/events/:id/like", likeEvent)
	webserver.ApiDELETE("/events/:id/like", unlikeEvent)
}

func listEvents(c echo.Context) error {
	page, pageSize := parsePagination(c)
	db := GetDB(c).Model(&domain.Event{}).Where("is_active = ?", true)
	if c.QueryParam("upcoming") == "true" {
		db = db.Where("starts_at > ?", time.Now())
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query events", err.Error())
	}
	var rows []domain.Event
	if err := db.Order("starts_at ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query events", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getEvent(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID", nil)
	}
	var event domain.Event
	if err := GetDB(c).Where("id = ? AND is_active = ?", id, true).First(&event).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Event not found", nil)
	}
	var registered int64
	GetDB(c).Model(&domain.EventRegistration{}).Where("event_id = ?", event.ID).Count(&registered)
	var likes int64
	GetDB(c).Model(&domain.EventLike{}).Where("event_id = ?", event.ID).Count(&likes)

	isLiked := false
	if viewerID := webserver.OptionalUserID(c); viewerID != 0 {
		var n int64
		GetDB(c).Model(&domain.EventLike{}).
			Where("event_id = ? AND user_id = ?", event.ID, viewerID).
			Count(&n)
		isLiked = n > 0
	}

	return ok(c, map[string]interface{}{
		"event":             event,
		"registered":        registered,
		"registration_open": event.RegistrationOpen(time.Now()),
		"likes":             likes,
		"is_liked":          isLiked,
	})
}

func createEvent(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	var payload eventPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse event", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Event validation failed", err.Error())
	}

	startsAt, err := time.Parse(time.RFC3339, payload.StartsAt)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "starts_at must be RFC3339", nil)
	}
	regFrom, err := time.Parse(time.RFC3339, payload.RegistrationFrom)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "registration_from must be RFC3339", nil)
	}
	regUntil, err := time.Parse(time.RFC3339, payload.RegistrationUntil)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "registration_until must be RFC3339", nil)
	}
	if !regUntil.After(regFrom) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "registration_until must be after registration_from", nil)
	}

	now := time.Now()
	event := domain.Event{
		ID:                common.UUIDint64(),
		Title:             strings.TrimSpace(payload.Title),
		Description:       payload.Description,
		Location:          strings.TrimSpace(payload.Location),
		StartsAt:          startsAt,
		RegistrationFrom:  regFrom,
		RegistrationUntil: regUntil,
		MaxParticipants:   payload.MaxParticipants,
		IsActive:          payload.IsActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := GetDB(c).Create(&event).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create event", err.Error())
	}
	return ok(c, event)
}

// registerForEvent signs the caller up for an event. The capacity check and
// the insert run inside one transaction so a full event never oversells;
// the unique (event, user) index rejects a concurrent double signup.
func registerForEvent(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID", nil)
	}

	var payload eventRegisterPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", err.Error())
	}
	if payload.CarId != 0 {
		var car domain.Car
		if err := GetDB(c).Where("id = ? AND user_id = ?", payload.CarId, userID).First(&car).Error; err != nil {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Car not found", nil)
		}
	}

	var reg domain.EventRegistration
	txErr := GetDB(c).Transaction(func(tx *gorm.DB) error {
		// The FOR UPDATE lock on the event row serializes concurrent
		// registrations for the same event; without it two transactions
		// racing for the last seat both pass the count below.
		var event domain.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_active = ?", id, true).
			First(&event).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		if !event.RegistrationOpen(time.Now()) {
			return echo.NewHTTPError(http.StatusConflict, "Registration is closed")
		}

		var count int64
		if err := tx.Model(&domain.EventRegistration{}).
			Where("event_id = ?", event.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if !event.HasCapacity(count) {
			return echo.NewHTTPError(http.StatusConflict, "Event is full")
		}

		reg = domain.EventRegistration{
			ID:        common.UUIDint64(),
			EventId:   event.ID,
			UserId:    userID,
			CarId:     payload.CarId,
			Status:    "confirmed",
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&reg).Error; err != nil {
			return echo.NewHTTPError(http.StatusConflict, "Already registered for this event")
		}
		return nil
	})
	if txErr != nil {
		if he, ok2 := txErr.(*echo.HTTPError); ok2 {
			return fail(c, he.Code, "REGISTRATION_FAILED", he.Message.(string), nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to register", nil)
	}
	return ok(c, reg)
}

func cancelEventRegistration(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID", nil)
	}
	res := GetDB(c).Where("event_id = ? AND user_id = ?", id, userID).Delete(&domain.EventRegistration{})
	if res.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to cancel registration", res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Registration not found", nil)
	}
	return ok(c, map[string]interface{}{"cancelled": true})
}

// likeEvent is idempotent: the unique (event, user) index collapses a
// repeated like into one row.
func likeEvent(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID", nil)
	}
	var event domain.Event
	if err := GetDB(c).Where("id = ? AND is_active = ?", id, true).First(&event).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Event not found", nil)
	}

	like := domain.EventLike{
		ID:        common.UUIDint64(),
		EventId:   event.ID,
		UserId:    userID,
		CreatedAt: time.Now(),
	}
	if err := GetDB(c).Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to like event", err.Error())
	}
	var likes int64
	GetDB(c).Model(&domain.EventLike{}).Where("event_id = ?", event.ID).Count(&likes)
	return ok(c, map[string]interface{}{"liked": true, "likes": likes})
}

func unlikeEvent(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID", nil)
	}
	res := GetDB(c).Where("event_id = ? AND user_id = ?", id, userID).Delete(&domain.EventLike{})
	if res.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to unlike event", res.Error.Error())
	}
	var likes int64
	GetDB(c).Model(&domain.EventLike{}).Where("event_id = ?", id).Count(&likes)
	return ok(c, map[string]interface{}{"liked": false, "likes": likes})
}

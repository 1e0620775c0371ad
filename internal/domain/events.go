package domain

import "time"

// Event is a meetup with a bounded registration window and capacity.
type Event struct {
	ID                int64     `json:"id,string" form:"id"`
	Title             string    `gorm:"index" json:"title" form:"title"`
	Description       string    `json:"description" form:"description"`
	Location          string    `json:"location" form:"location"`
	StartsAt          time.Time `json:"starts_at" form:"starts_at"`
	RegistrationFrom  time.Time `json:"registration_from" form:"registration_from"`
	RegistrationUntil time.Time `json:"registration_until" form:"registration_until"`
	MaxParticipants   int       `json:"max_participants" form:"max_participants"`
	IsActive          bool      `json:"is_active" form:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Event) TableName() string {
	return "event"
}

// RegistrationOpen reports whether registration is possible at the given
// moment (capacity is checked separately, inside the registration tx).
func (e *Event) RegistrationOpen(now time.Time) bool {
	if !e.IsActive {
		return false
	}
	return !now.Before(e.RegistrationFrom) && !now.After(e.RegistrationUntil)
}

// HasCapacity reports whether one more registration fits. Zero
// MaxParticipants means unlimited. Callers must hold a lock on the event
// row while counting, otherwise the check races.
func (e *Event) HasCapacity(registered int64) bool {
	if e.MaxParticipants <= 0 {
		return true
	}
	return registered < int64(e.MaxParticipants)
}

// EventRegistration is unique per (event, user).
type EventRegistration struct {
	ID        int64     `json:"id,string" form:"id"`
	EventId   int64     `gorm:"uniqueIndex:uk_reg_event_user" json:"event_id,string" form:"event_id"`
	UserId    int64     `gorm:"uniqueIndex:uk_reg_event_user" json:"user_id,string" form:"user_id"`
	CarId     int64     `gorm:"default:0" json:"car_id,string" form:"car_id"`
	Status    string    `gorm:"size:20" json:"status" form:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (EventRegistration) TableName() string {
	return "event_registration"
}

// EventLike is unique per (event, user); liking twice removes the like.
type EventLike struct {
	ID        int64     `json:"id,string" form:"id"`
	EventId   int64     `gorm:"uniqueIndex:uk_event_like_user" json:"event_id,string" form:"event_id"`
	UserId    int64     `gorm:"uniqueIndex:uk_event_like_user" json:"user_id,string" form:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (EventLike) TableName() string {
	return "event_like"
}

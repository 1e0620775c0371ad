package domain

import (
	"strings"
	"time"
)

// User is a registered member of the platform. The Hide* flags are the
// per-field privacy switches honored by the visibility policy: HideName
// hides both name parts regardless of the individual flags.
type User struct {
	ID            int64     `json:"id,string" form:"id"`
	Username      string    `gorm:"uniqueIndex" json:"username" form:"username"`
	Email         string    `gorm:"index" json:"email" form:"email"`
	Password      string    `json:"-" form:"-"`
	FirstName     string    `json:"first_name" form:"first_name"`
	LastName      string    `json:"last_name" form:"last_name"`
	Phone         string    `json:"phone" form:"phone"`
	Avatar        string    `gorm:"size:1024" json:"avatar" form:"avatar"`
	Bio           string    `json:"bio" form:"bio"`
	Instagram     string    `gorm:"size:200" json:"instagram" form:"instagram"`
	Telegram      string    `gorm:"size:200" json:"telegram" form:"telegram"`
	Youtube       string    `gorm:"size:200" json:"youtube" form:"youtube"`
	Vk            string    `gorm:"size:200" json:"vk" form:"vk"`
	HideEmail     bool      `json:"hide_email" form:"hide_email"`
	HideName      bool      `json:"hide_name" form:"hide_name"`
	HideFirstName bool      `json:"hide_first_name" form:"hide_first_name"`
	HideLastName  bool      `json:"hide_last_name" form:"hide_last_name"`
	HidePhone     bool      `json:"hide_phone" form:"hide_phone"`
	Level         string    `gorm:"size:16" json:"level" form:"level"`
	Status        string    `gorm:"size:16" json:"status" form:"status"`
	LastLogin     time.Time `json:"last_login"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}

// Operator levels
const (
	LevelSuper = "super"
	LevelStaff = "staff"
	LevelUser  = "user"
)

// IsStaff reports whether the user may perform staff-only operations.
func (u *User) IsStaff() bool {
	return u.Level == LevelStaff || u.Level == LevelSuper
}

// Social fields accept either a full profile link or a bare handle;
// socialHandle normalizes both to the account name.
func socialHandle(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if i := strings.Index(v, "://"); i >= 0 {
		v = v[i+3:]
	}
	v = strings.TrimSuffix(v, "/")
	if i := strings.LastIndex(v, "/"); i >= 0 {
		v = v[i+1:]
	}
	return strings.TrimPrefix(v, "@")
}

func (u *User) InstagramHandle() string { return socialHandle(u.Instagram) }
func (u *User) TelegramHandle() string  { return socialHandle(u.Telegram) }
func (u *User) YoutubeHandle() string   { return socialHandle(u.Youtube) }
func (u *User) VkHandle() string        { return socialHandle(u.Vk) }

func (u *User) InstagramURL() string {
	if h := u.InstagramHandle(); h != "" {
		return "https://instagram.com/" + h
	}
	return ""
}

func (u *User) TelegramURL() string {
	if h := u.TelegramHandle(); h != "" {
		return "https://t.me/" + h
	}
	return ""
}

func (u *User) YoutubeURL() string {
	if h := u.YoutubeHandle(); h != "" {
		return "https://youtube.com/@" + h
	}
	return ""
}

func (u *User) VkURL() string {
	if h := u.VkHandle(); h != "" {
		return "https://vk.com/" + h
	}
	return ""
}

// Car belongs to a user's garage; used when registering for meetups.
type Car struct {
	ID           int64     `json:"id,string" form:"id"`
	UserId       int64     `gorm:"index" json:"user_id,string" form:"user_id"`
	Brand        string    `json:"brand" form:"brand"`
	Model        string    `json:"model" form:"model"`
	Generation   string    `json:"generation" form:"generation"`
	Year         int       `json:"year" form:"year"`
	LicensePlate string    `gorm:"size:20" json:"license_plate" form:"license_plate"`
	Vin          string    `gorm:"size:17" json:"vin" form:"vin"`
	Color        string    `gorm:"size:50" json:"color" form:"color"`
	Photo        string    `gorm:"size:1024" json:"photo" form:"photo"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName Specify table name
func (Car) TableName() string {
	return "user_cars"
}

// CarPhoto is an extra gallery image attached to a garage car. At most one
// photo per car carries IsPrimary; setting it demotes the previous one.
type CarPhoto struct {
	ID        int64     `json:"id,string" form:"id"`
	CarId     int64     `gorm:"index" json:"car_id,string" form:"car_id"`
	Photo     string    `gorm:"size:1024" json:"photo" form:"photo"`
	Caption   string    `gorm:"size:200" json:"caption" form:"caption"`
	IsPrimary bool      `json:"is_primary" form:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (CarPhoto) TableName() string {
	return "user_car_photos"
}

// Package visibility produces redacted profile projections. Redaction is a
// pure function of the profile's privacy flags and the viewer identity;
// serialization happens downstream on the already-typed view.
package visibility

import (
	"time"

	"github.com/revline/revline/internal/domain"
)

// AnonymousViewer marks an unauthenticated caller. Anonymous viewers get
// the same redaction as any non-owner, never the owner view.
const AnonymousViewer int64 = 0

// ProfileView is the explicit public projection of a user profile.
// Redacted fields are nil rather than empty so clients can distinguish
// "hidden" from "not filled in".
type ProfileView struct {
	ID        int64       `json:"id,string"`
	Username  string      `json:"username"`
	Email     *string     `json:"email"`
	FirstName *string     `json:"first_name"`
	LastName  *string     `json:"last_name"`
	Phone     *string     `json:"phone"`
	Avatar    string      `json:"avatar"`
	Bio       string      `json:"bio"`
	Instagram *SocialLink `json:"instagram"`
	Telegram  *SocialLink `json:"telegram"`
	Youtube   *SocialLink `json:"youtube"`
	Vk        *SocialLink `json:"vk"`
	CreatedAt time.Time   `json:"created_at"`
}

// SocialLink carries both the normalized handle and the canonical profile
// URL derived from it. Social links are always public.
type SocialLink struct {
	Username string `json:"username"`
	URL      string `json:"url"`
}

func socialLink(handle, url string) *SocialLink {
	if handle == "" {
		return nil
	}
	return &SocialLink{Username: handle, URL: url}
}

// Redact builds the profile view a given viewer is allowed to see.
// The owner always sees the full profile. For everyone else the flags
// apply independently, except HideName which overrides both name flags.
func Redact(profile *domain.User, viewerID int64) ProfileView {
	view := ProfileView{
		ID:        profile.ID,
		Username:  profile.Username,
		Email:     strPtr(profile.Email),
		FirstName: strPtr(profile.FirstName),
		LastName:  strPtr(profile.LastName),
		Phone:     strPtr(profile.Phone),
		Avatar:    profile.Avatar,
		Bio:       profile.Bio,
		Instagram: socialLink(profile.InstagramHandle(), profile.InstagramURL()),
		Telegram:  socialLink(profile.TelegramHandle(), profile.TelegramURL()),
		Youtube:   socialLink(profile.YoutubeHandle(), profile.YoutubeURL()),
		Vk:        socialLink(profile.VkHandle(), profile.VkURL()),
		CreatedAt: profile.CreatedAt,
	}

	if viewerID != AnonymousViewer && viewerID == profile.ID {
		return view
	}

	if profile.HideEmail {
		view.Email = nil
	}
	if profile.HidePhone {
		view.Phone = nil
	}
	if profile.HideName || profile.HideFirstName {
		view.FirstName = nil
	}
	if profile.HideName || profile.HideLastName {
		view.LastName = nil
	}
	return view
}

func strPtr(s string) *string {
	return &s
}

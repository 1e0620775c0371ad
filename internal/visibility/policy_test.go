package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revline/revline/internal/domain"
)

func sampleUser() *domain.User {
	return &domain.User{
		ID:        100,
		Username:  "driftking",
		Email:     "drift@revline.club",
		FirstName: "Ken",
		LastName:  "Block",
		Phone:     "+10000000",
	}
}

func TestRedactOwnerSeesEverything(t *testing.T) {
	u := sampleUser()
	u.HideEmail = true
	u.HideName = true
	u.HidePhone = true

	view := Redact(u, u.ID)
	require.NotNil(t, view.Email)
	assert.Equal(t, "drift@revline.club", *view.Email)
	require.NotNil(t, view.FirstName)
	require.NotNil(t, view.LastName)
	require.NotNil(t, view.Phone)
}

func TestRedactFlagsApplyIndependently(t *testing.T) {
	u := sampleUser()
	u.HideEmail = true

	view := Redact(u, 200)
	assert.Nil(t, view.Email)
	require.NotNil(t, view.Phone)
	assert.Equal(t, "+10000000", *view.Phone)
	require.NotNil(t, view.FirstName)
	require.NotNil(t, view.LastName)
}

func TestRedactHideNameOverridesBoth(t *testing.T) {
	u := sampleUser()
	u.HideName = true

	view := Redact(u, 200)
	assert.Nil(t, view.FirstName)
	assert.Nil(t, view.LastName)
	assert.NotNil(t, view.Email)
}

func TestRedactSingleNameFlag(t *testing.T) {
	u := sampleUser()
	u.HideFirstName = true

	view := Redact(u, 200)
	assert.Nil(t, view.FirstName)
	require.NotNil(t, view.LastName)
	assert.Equal(t, "Block", *view.LastName)
}

func TestRedactAnonymousViewer(t *testing.T) {
	u := sampleUser()
	u.HidePhone = true

	view := Redact(u, AnonymousViewer)
	assert.Nil(t, view.Phone)
	assert.Equal(t, "driftking", view.Username)
}

func TestRedactSocialLinksAlwaysPublic(t *testing.T) {
	u := sampleUser()
	u.Instagram = "https://instagram.com/driftking/"
	u.HideEmail = true

	view := Redact(u, AnonymousViewer)
	require.NotNil(t, view.Instagram)
	assert.Equal(t, "driftking", view.Instagram.Username)
	assert.Equal(t, "https://instagram.com/driftking", view.Instagram.URL)
	assert.Nil(t, view.Telegram)
	assert.Nil(t, view.Youtube)
	assert.Nil(t, view.Vk)
}

func TestRedactAnonymousNeverOwner(t *testing.T) {
	// A profile with ID 0 must not be treated as owned by the anonymous
	// viewer.
	u := sampleUser()
	u.ID = 0
	u.HideEmail = true

	view := Redact(u, AnonymousViewer)
	assert.Nil(t, view.Email)
}

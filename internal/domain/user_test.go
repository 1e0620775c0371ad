package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSocialHandleNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"driftking", "driftking"},
		{"@driftking", "driftking"},
		{"https://instagram.com/driftking", "driftking"},
		{"https://instagram.com/driftking/", "driftking"},
		{"https://t.me/driftking", "driftking"},
		{"https://youtube.com/@driftking", "driftking"},
		{"  driftking  ", "driftking"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, socialHandle(tc.in), "input %q", tc.in)
	}
}

func TestSocialURLsDerivedFromHandle(t *testing.T) {
	u := &User{
		Instagram: "https://instagram.com/driftking/",
		Telegram:  "@driftking",
		Youtube:   "driftking",
	}
	assert.Equal(t, "https://instagram.com/driftking", u.InstagramURL())
	assert.Equal(t, "https://t.me/driftking", u.TelegramURL())
	assert.Equal(t, "https://youtube.com/@driftking", u.YoutubeURL())
	assert.Equal(t, "", u.VkURL())
	assert.Equal(t, "", u.VkHandle())
}

func TestIsStaff(t *testing.T) {
	assert.True(t, (&User{Level: LevelStaff}).IsStaff())
	assert.True(t, (&User{Level: LevelSuper}).IsStaff())
	assert.False(t, (&User{Level: LevelUser}).IsStaff())
}

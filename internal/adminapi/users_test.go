package adminapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleBrand(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"toyota", "Toyota"},
		{"TOYOTA", "Toyota"},
		{"alfa romeo", "Alfa Romeo"},
		{"  land   rover  ", "Land Rover"},
		{"bmw", "Bmw"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, titleBrand(tc.in), "input %q", tc.in)
	}
}

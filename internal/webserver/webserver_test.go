package webserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revline/revline/config"
)

func optionalIDContext(token string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestOptionalUserID(t *testing.T) {
	cfg := config.DefaultAppConfig
	Init(cfg, nil)

	t.Run("valid token resolves the user", func(t *testing.T) {
		token, err := CreateToken(cfg, 42, "driftking", "user")
		require.NoError(t, err)
		assert.EqualValues(t, 42, OptionalUserID(optionalIDContext(token)))
	})

	t.Run("no header is anonymous", func(t *testing.T) {
		assert.EqualValues(t, 0, OptionalUserID(optionalIDContext("")))
	})

	t.Run("garbage token is anonymous", func(t *testing.T) {
		assert.EqualValues(t, 0, OptionalUserID(optionalIDContext("not-a-jwt")))
	})

	// A token signed with alg "none" must never resolve to a user, even
	// though its claims parse fine.
	t.Run("unsigned token is anonymous", func(t *testing.T) {
		claims := JwtClaims{
			UserID:   42,
			Username: "driftking",
			Level:    "user",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		assert.EqualValues(t, 0, OptionalUserID(optionalIDContext(token)))
	})

	t.Run("token signed with the wrong key is anonymous", func(t *testing.T) {
		claims := JwtClaims{UserID: 42, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("someone-elses-secret"))
		require.NoError(t, err)
		assert.EqualValues(t, 0, OptionalUserID(optionalIDContext(token)))
	})
}

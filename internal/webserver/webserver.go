// Package webserver owns the echo instance: route groups, JWT auth,
// request validation and JSON serialization. Handlers register themselves
// through the package-level Api*/Pub* helpers.
package webserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/revline/revline/config"
)

const dbContextKey = "revline_db"

type WebServer struct {
	root   *echo.Echo
	pub    *echo.Group
	api    *echo.Group
	config *config.AppConfig
	db     *gorm.DB
}

var server *WebServer

// JwtClaims carries the authenticated user identity through requests.
type JwtClaims struct {
	UserID   int64  `json:"uid,string"`
	Username string `json:"usr"`
	Level    string `json:"lvl"`
	jwt.RegisteredClaims
}

type webValidator struct {
	validate *validator.Validate
}

func (v *webValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func Init(cfg *config.AppConfig, db *gorm.DB) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = &jsonSerializer{}
	e.Validator = &webValidator{validate: validator.New()}
	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(dbContextKey, db)
			return next(c)
		}
	})

	pub := e.Group("/api/v1")
	api := e.Group("/api/v1")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.JwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(JwtClaims)
		},
	}))

	server = &WebServer{root: e, pub: pub, api: api, config: cfg, db: db}
	return server
}

// Listen starts the HTTP server and blocks.
func (s *WebServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.config.Web.Host, s.config.Web.Port)
	zap.S().Infof("webserver listening on %s", addr)
	return s.root.Start(addr)
}

func (s *WebServer) Shutdown() {
	_ = s.root.Close()
}

// CreateToken issues a signed JWT for the given identity.
func CreateToken(cfg *config.AppConfig, userID int64, username, level string) (string, error) {
	claims := JwtClaims{
		UserID:   userID,
		Username: username,
		Level:    level,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    cfg.System.Appid,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Web.JwtSecret))
}

// Config returns the active application configuration.
func Config() *config.AppConfig {
	return server.config
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(dbContextKey).(*gorm.DB)
}

// Claims returns the JWT claims of the authenticated request, nil for
// anonymous callers.
func Claims(c echo.Context) *JwtClaims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*JwtClaims)
	if !ok {
		return nil
	}
	return claims
}

// CurrentUserID returns the authenticated user id, 0 for anonymous.
func CurrentUserID(c echo.Context) int64 {
	if claims := Claims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// CurrentLevel returns the authenticated user level, "" for anonymous.
func CurrentLevel(c echo.Context) string {
	if claims := Claims(c); claims != nil {
		return claims.Level
	}
	return ""
}

// OptionalUserID resolves the viewer identity on public routes: a valid
// bearer token yields the user id, anything else is anonymous (0).
func OptionalUserID(c echo.Context) int64 {
	if id := CurrentUserID(c); id != 0 {
		return id
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return 0
	}
	claims := new(JwtClaims)
	token, err := jwt.ParseWithClaims(auth[len(prefix):], claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(server.config.Web.JwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0
	}
	return claims.UserID
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("took", time.Since(start)))
			return err
		}
	}
}

// Route registration helpers used by the adminapi package.

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiPATCH(path string, h echo.HandlerFunc) {
	server.api.PATCH(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"repairshop/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func doRequest(cfg config.Config, authz string, extra ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	for i := len(extra) - 1; i >= 0; i-- {
		h = extra[i](h)
	}
	_ = AuthJWT(cfg)(h)(c)
	return rec
}

func TestAuthJWT_ValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}
	now := time.Now()
	token := signToken(t, "test_secret", jwt.MapClaims{
		"sub":  int64(42),
		"role": "STAFF",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	})

	rec := doRequest(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}

	rec := doRequest(cfg, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}
	now := time.Now()
	token := signToken(t, "other_secret", jwt.MapClaims{
		"sub":  int64(42),
		"role": "STAFF",
		"exp":  now.Add(time.Hour).Unix(),
	})

	rec := doRequest(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}
	now := time.Now()
	token := signToken(t, "test_secret", jwt.MapClaims{
		"sub":  int64(42),
		"role": "STAFF",
		"exp":  now.Add(-time.Hour).Unix(),
	})

	rec := doRequest(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}

	rec := doRequest(cfg, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}
	now := time.Now()

	staffToken := signToken(t, "test_secret", jwt.MapClaims{
		"sub":  int64(1),
		"role": "STAFF",
		"exp":  now.Add(time.Hour).Unix(),
	})
	adminToken := signToken(t, "test_secret", jwt.MapClaims{
		"sub":  int64(2),
		"role": "ADMIN",
		"exp":  now.Add(time.Hour).Unix(),
	})

	rec := doRequest(cfg, "Bearer "+staffToken, AdminRoleGuard())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(cfg, "Bearer "+adminToken, AdminRoleGuard())
	assert.Equal(t, http.StatusOK, rec.Code)
}

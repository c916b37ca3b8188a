package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mwSecret = "middleware-test-secret"

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func accessClaims(userID int64, isAdmin bool) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":      userID,
		"is_admin": isAdmin,
		"typ":      "access",
		"iat":      now.Unix(),
		"exp":      now.Add(15 * time.Minute).Unix(),
	}
}

func runWithAuth(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := middleware.AuthJWT(config.Config{JWTSecret: mwSecret})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signTestToken(t, mwSecret, accessClaims(42, true))

	rec, c := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, true, c.Get(middleware.CtxIsAdminKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := runWithAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongScheme(t *testing.T) {
	rec, _ := runWithAuth(t, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadSignature(t *testing.T) {
	token := signTestToken(t, "other-secret", accessClaims(42, false))

	rec, _ := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := accessClaims(42, false)
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signTestToken(t, mwSecret, claims)

	rec, _ := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// refresh tokenでは保護ルートに入れない
func TestAuthJWT_RejectsRefreshToken(t *testing.T) {
	claims := accessClaims(42, false)
	claims["typ"] = "refresh"
	token := signTestToken(t, mwSecret, claims)

	rec, _ := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard(t *testing.T) {
	e := echo.New()

	run := func(isAdmin interface{}) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if isAdmin != nil {
			c.Set(middleware.CtxIsAdminKey, isAdmin)
		}

		handler := middleware.AdminRoleGuard()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run(true).Code)
	assert.Equal(t, http.StatusForbidden, run(false).Code)
	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)
}

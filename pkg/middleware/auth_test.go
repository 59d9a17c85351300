package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gym-admin/pkg/contextkeys"
	"gym-admin/pkg/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProtectedEcho(enabled bool, jwtSvc service.JWTService) *echo.Echo {
	e := echo.New()
	mw := NewAuthMiddleware(jwtSvc, enabled, zap.NewNop())
	e.GET("/secure", func(c echo.Context) error {
		staffID, _ := c.Request().Context().Value(contextkeys.StaffIDKey).(string)
		return c.String(http.StatusOK, staffID)
	}, mw.Auth)
	return e
}

func TestAuth_Disabled_PassesThrough(t *testing.T) {
	e := newProtectedEcho(false, service.NewJWTService("secret", time.Hour))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secure", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_Enabled(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour)
	e := newProtectedEcho(true, jwtSvc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secure", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "без токена")

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abc")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "неверная схема")

	token, err := jwtSvc.GenerateAccessToken("STF001", "MANAGER")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "STF001", rec.Body.String())
}

func TestInjectLogger_SetsRequestID(t *testing.T) {
	e := echo.New()
	e.Use(InjectLogger(zap.NewNop()))
	e.GET("/ping", func(c echo.Context) error {
		_, ok := c.Get("logger").(*zap.Logger)
		assert.True(t, ok)
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeader))
}

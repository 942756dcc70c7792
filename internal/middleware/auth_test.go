package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventorypulse/internal/model"
	"inventorypulse/pkg/config"
	"inventorypulse/pkg/jwtutil"
)

func init() {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationTime: time.Hour})
}

func runRequest(t *testing.T, authHeader string, handler echo.HandlerFunc, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	wrapped := handler
	for i := len(mw) - 1; i >= 0; i-- {
		wrapped = mw[i](wrapped)
	}
	require.NoError(t, wrapped(c))
	return rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec := runRequest(t, "", okHandler, AuthMiddleware)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	rec := runRequest(t, "Token abc", okHandler, AuthMiddleware)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	rec := runRequest(t, "Bearer garbage", okHandler, AuthMiddleware)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareStoresClaims(t *testing.T) {
	token, err := jwtutil.GenerateToken("manager@example.com", "manager", 3, model.RoleManager)
	require.NoError(t, err)

	rec := runRequest(t, "Bearer "+token, func(c echo.Context) error {
		email, ok := CallerEmail(c)
		assert.True(t, ok)
		assert.Equal(t, "manager@example.com", email)

		id, ok := CallerID(c)
		assert.True(t, ok)
		assert.Equal(t, uint(3), id)

		assert.Equal(t, model.RoleManager, c.Get("user_role"))
		return c.NoContent(http.StatusOK)
	}, AuthMiddleware)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesAllowsPrivileged(t *testing.T) {
	token, err := jwtutil.GenerateToken("admin@example.com", "admin", 1, model.RoleAdmin)
	require.NoError(t, err)

	rec := runRequest(t, "Bearer "+token, okHandler,
		AuthMiddleware, RequireRoles(model.RoleAdmin, model.RoleManager))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesForbidsViewer(t *testing.T) {
	token, err := jwtutil.GenerateToken("viewer@example.com", "viewer", 2, model.RoleViewer)
	require.NoError(t, err)

	rec := runRequest(t, "Bearer "+token, okHandler,
		AuthMiddleware, RequireRoles(model.RoleAdmin, model.RoleManager))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesWithoutAuth(t *testing.T) {
	rec := runRequest(t, "", okHandler, RequireRoles(model.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

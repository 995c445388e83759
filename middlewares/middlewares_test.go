package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/services"
	"github.com/Kariqs/storefront-api/utils"
)

const testSecret = "test-secret"

type userMap map[uint]*models.User

func (m userMap) User(_ context.Context, id uint) (*models.User, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return nil, services.ErrUserNotFound
}

type failingLoader struct{ err error }

func (l failingLoader) User(context.Context, uint) (*models.User, error) {
	return nil, l.err
}

func newRouter(users UserLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(), Metrics())
	r.GET("/me", RequireAuth(testSecret, users), func(ctx *gin.Context) {
		user, _ := CurrentUser(ctx)
		ctx.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	r.GET("/admin", RequireAuth(testSecret, users), RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return r
}

func token(t *testing.T, user *models.User) string {
	t.Helper()
	tok, err := utils.GenerateJWT(user, testSecret, time.Now())
	require.NoError(t, err)
	return tok
}

func TestRequireAuth(t *testing.T) {
	customer := &models.User{ID: 1, Email: "ann@example.com", Role: models.RoleCustomer}
	r := newRouter(userMap{1: customer})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token(t, customer)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, customer))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		tok, err := utils.GenerateJWT(customer, "other-secret", time.Now())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, &models.User{ID: 2, Role: models.RoleCustomer}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})

	t.Run("store failure", func(t *testing.T) {
		down := newRouter(failingLoader{err: errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, customer))
		w := httptest.NewRecorder()
		down.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"Server error"`)
	})
}

func TestRequireAdmin(t *testing.T) {
	customer := &models.User{ID: 1, Role: models.RoleCustomer}
	admin := &models.User{ID: 2, Role: models.RoleAdmin}
	r := newRouter(userMap{1: customer, 2: admin})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, customer))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, admin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoggerKeepsIncomingRequestID(t *testing.T) {
	r := newRouter(userMap{})
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

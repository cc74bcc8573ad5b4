//go:build unit

package middleware_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"cridaa-booking/internal/handler/middleware"
	"cridaa-booking/internal/usecase"
	"cridaa-booking/tests/common/httptest"
	usecasemock "cridaa-booking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *usecasemock.MockTokenValidator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	validator := usecasemock.NewMockTokenValidator(ctrl)
	authMw := middleware.NewAuthMiddleware(validator)

	router := gin.New()
	router.GET("/protected", authMw.RequireAuth(), func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		username, _ := middleware.GetUsername(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID.String(), "username": username})
	})
	return router, validator
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid bearer token passes through", func(t *testing.T) {
		router, validator := setupAuthRouter(t)
		userID := uuid.New()
		validator.EXPECT().ValidateToken("good-token").Return(userID, "alice", nil)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, "good-token")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), "alice")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router, _ := setupAuthRouter(t)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		router, _ := setupAuthRouter(t)

		req := nethttptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := nethttptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Access token required")
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		router, validator := setupAuthRouter(t)
		validator.EXPECT().ValidateToken("bad-token").
			Return(uuid.Nil, "", usecase.ErrTokenValidation)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, "bad-token")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})
}

//go:build unit

package httperr_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cridaa-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("writes the flat error body and records the cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		cause := errors.New("slot status changed")
		httperr.AbortWithError(c, http.StatusConflict, cause, "Slot is already booked")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error": "Slot is already booked"}`, w.Body.String())
		assert.True(t, c.IsAborted())

		require.Len(t, c.Errors, 1)
		assert.ErrorIs(t, c.Errors[0].Err, cause)
		resp, ok := c.Errors[0].Meta.(httperr.Response)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, resp.Status)
	})

	t.Run("panics on nil cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		assert.Panics(t, func() {
			httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error")
		})
	})
}

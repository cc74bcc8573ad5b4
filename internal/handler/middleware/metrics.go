package middleware

import (
	"strconv"
	"time"

	"cridaa-booking/internal/monitoring"

	"github.com/gin-gonic/gin"
)

func MetricsMiddleware(monitor *monitoring.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		monitor.TrackHTTPRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles GET /ping.
func Health(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checker.HealthCheck(c.Request.Context()); err != nil {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	}
}

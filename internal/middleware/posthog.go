package middleware

import (
	"net/http"
	"strings"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog.
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events
// with PostHog, keyed by the authenticated employee.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		employeeID, exists := GetEmployeeIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/tips/allocate" -> "api_v1_tips_allocate"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		posthogClient.Enqueue(employeeID, eventName, map[string]any{
			"method": c.Request.Method,
			"status": c.Writer.Status(),
		})
	}
}

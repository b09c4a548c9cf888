package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/todo_api/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains routes that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware tracks successful authenticated API calls as PostHog
// events named after the route template ("/todos/:id/toggle" -> "todos_:id_toggle").
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := EventNameForRoute(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(strconv.FormatInt(userID, 10), eventName, props)
	}
}

// EventNameForRoute derives an analytics event name from a gin route template.
func EventNameForRoute(fullPath string) string {
	eventName := strings.TrimPrefix(fullPath, "/")
	return strings.ReplaceAll(eventName, "/", "_")
}

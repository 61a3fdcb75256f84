package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/miguelacho_api/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/":        true,
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog.
// The API is anonymous, so the client IP is used as the distinct id.
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

		// "/convertir" -> "convertir"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if origen := c.Query("origen"); origen != "" {
			props["origen"] = strings.ToUpper(origen)
		}
		if destino := c.Query("destino"); destino != "" {
			props["destino"] = strings.ToUpper(destino)
		}

		posthogClient.Enqueue(c.ClientIP(), eventName, props)
	}
}

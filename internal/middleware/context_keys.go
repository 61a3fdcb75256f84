package middleware

import "github.com/gin-gonic/gin"

// contextKey is used for values stored in the Gin and request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	subjectKey   = contextKey("subject")
)

// GetSubjectFromContext retrieves the authenticated admin subject from the Gin context.
// It returns the subject and a boolean indicating if it was found.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	if subject, ok := c.Request.Context().Value(subjectKey).(string); ok && subject != "" {
		return subject, true
	}
	subjectVal, exists := c.Get(string(subjectKey))
	if !exists {
		return "", false
	}
	subject, ok := subjectVal.(string)
	return subject, ok
}

package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// SessionStarter scopes store connection checks to one request.
type SessionStarter interface {
	WithSession(ctx context.Context) context.Context
}

// DatabaseSessionMiddleware makes every repository call of a request share a
// single connection check.
func DatabaseSessionMiddleware(db SessionStarter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(db.WithSession(c.Request.Context()))
		c.Next()
	}
}

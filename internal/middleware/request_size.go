package middleware

import (
	"net/http"
	"strings"

	"github.com/Augusto140/Englife-server/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Registration forms are a handful of short fields.
const DefaultMaxRequestSize = 1 << 20

const msgRequestTooLarge = "Requisição muito grande"

// RequestSizeLimitMiddleware rejects bodies declared larger than maxSize and
// caps the rest while they are read, so form parsing fails instead of
// buffering an unbounded body.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			abortWithMessage(c, http.StatusRequestEntityTooLarge, msgRequestTooLarge)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// abortWithMessage answers JSON to API clients and plain text to browsers.
func abortWithMessage(c *gin.Context, status int, message string) {
	if isAPIRequest(c) {
		utils.AbortWithError(c, status, message)
		return
	}
	c.String(status, message)
	c.Abort()
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadOnlyMiddleware rejects mutating requests while the service runs in
// read-only mode, e.g. during a database migration. Reads keep working so
// patrons can still see their loans.
type ReadOnlyMiddleware struct {
	enabled bool
}

func NewReadOnlyMiddleware(enabled bool) *ReadOnlyMiddleware {
	return &ReadOnlyMiddleware{enabled: enabled}
}

func (m *ReadOnlyMiddleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks everything but GET, HEAD and OPTIONS.
func (m *ReadOnlyMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.Header("Retry-After", "300")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "The lending service is in read-only mode",
			Code:  "READ_ONLY_MODE",
		})
	}
}

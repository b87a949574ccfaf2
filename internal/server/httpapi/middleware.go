package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags the request context with a request ID, echoed in the
// X-Request-ID response header, and writes one line per request once the
// chain has finished. A well-formed incoming ID is kept.
func RequestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.ContextWith(c.Request.Context(), "request_id", id))

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if id, ok := auth.IdentityFromContext(c.Request.Context()); ok {
			args = append(args, "username", id.Username)
		}
		l.Info(c.Request.Context(), "request", args...)
	}
}

// Recovery turns a panic in a later stage into a 500 and an error log line.
func Recovery(l logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.Error(c.Request.Context(), "panic while serving request", "path", c.Request.URL.Path, "panic", recovered)
		c.String(http.StatusInternalServerError, "internal error")
		c.Abort()
	})
}

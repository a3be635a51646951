package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "requestId"

// requestLogMiddleware tags every request with a generated id and logs one
// line per request with method, path, status and latency. Bodies are never
// logged, so credentials cannot leak into log lines.
func (h *Handler) requestLogMiddleware(c *gin.Context) {
	reqID := uuid.NewString()
	c.Set(requestIDKey, reqID)
	c.Header("X-Request-ID", reqID)

	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

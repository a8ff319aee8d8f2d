package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// requestMiddleware tags each request with an id, then logs and measures it.
func (h *Handler) requestMiddleware(c *gin.Context) {
	start := time.Now()

	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Set(requestIDKey, reqID)
	c.Header(requestIDHeader, reqID)

	c.Next()

	elapsed := time.Since(start)
	status := c.Writer.Status()
	h.metrics.Record(c.Request.Context(), c.Request.Method, c.FullPath(), status, elapsed)

	if h.log == nil {
		return
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency_ms", elapsed.Milliseconds(),
		"request_id", reqID,
	}
	if status >= http.StatusInternalServerError {
		h.log.Warnw("http_request", fields...)
		return
	}
	h.log.Infow("http_request", fields...)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	if err := h.services.Health.Ping(c.Request.Context()); err != nil {
		if h.log != nil {
			h.log.Errorw("health_ping_failed", "err", err)
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexbrief/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	mailbox    port.Mailbox
	summarizer port.Summarizer
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(mailbox port.Mailbox, summarizer port.Summarizer) *HealthHandler {
	return &HealthHandler{mailbox: mailbox, summarizer: summarizer}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.mailbox.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "session store not reachable"})
		return
	}
	if err := h.summarizer.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "analysis service not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

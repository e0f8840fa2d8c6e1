package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billscan/internal/extract"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	engine *extract.Engine
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(engine *extract.Engine) *HealthHandler {
	return &HealthHandler{engine: engine}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Runs a canary extraction to confirm the
// engine is compiled and wired.
func (h *HealthHandler) Readiness(c *gin.Context) {
	doc := h.engine.Extract("Invoice Number: READY-001")
	if doc.DocumentNumber == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "extraction engine not responding"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

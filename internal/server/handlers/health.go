package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	logger        *zap.Logger
	startTime     time.Time
	hasCredential bool
}

func NewHealthHandler(logger *zap.Logger, hasCredential bool) *HealthHandler {
	return &HealthHandler{
		logger:        logger,
		startTime:     time.Now(),
		hasCredential: hasCredential,
	}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "alive",
		Uptime: time.Since(h.startTime).String(),
	})
}

// Readiness fails while no API credential is configured, since every
// forecast request would be refused.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.hasCredential {
		h.logger.Debug("Readiness probe failed: no credential")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Uptime: time.Since(h.startTime).String(),
			Reason: "forecast API credential is not configured",
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status: "ready",
		Uptime: time.Since(h.startTime).String(),
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	if !h.hasCredential {
		status = "degraded"
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

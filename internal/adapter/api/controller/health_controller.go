package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/pkg/logger"
)

// Pinger is anything the health check can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports whether the service and its storage are up
type HealthController struct {
	store   Pinger
	version string
	logger  logger.Logger
}

// NewHealthController creates a HealthController
func NewHealthController(store Pinger, version string, logger logger.Logger) *HealthController {
	return &HealthController{
		store:   store,
		version: version,
		logger:  logger,
	}
}

// Check verifies the storage connection
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.store.Ping(pingCtx); err != nil {
		c.logger.Error("health check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "version": c.version})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": c.version})
}

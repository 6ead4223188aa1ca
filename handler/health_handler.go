package handler

import (
	"context"
	"net/http"
	"time"

	"resourceshub/middleware"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	db          middleware.Pinger
	started     time.Time
	cpuInterval time.Duration
	now         func() time.Time
}

// NewHealthHandler reports on db, which may be nil when MongoDB was not
// reachable at startup.
func NewHealthHandler(db middleware.Pinger, started time.Time) *HealthHandler {
	return &HealthHandler{db: db, started: started, cpuInterval: 200 * time.Millisecond, now: time.Now}
}

// Test handles GET /api/test.
func (h *HealthHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API is working"})
}

// Health handles GET /api/health. A down database degrades the status but the
// endpoint still answers 200 so catalog-only deployments stay healthy.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	database := gin.H{"connected": false}
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			database["error"] = err.Error()
			status = "degraded"
		} else {
			database["connected"] = true
		}
	} else {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"uptime":    h.now().Sub(h.started).Round(time.Second).String(),
		"timestamp": h.now().UTC(),
		"database":  database,
		"system": gin.H{
			"cpu_percent":    utils.GetCPUUsage(ctx, h.cpuInterval),
			"memory_percent": utils.GetMemoryUsage(ctx),
		},
	})
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// The dashboard is ready once the initial snapshot load has succeeded and
// the session store answers a ping.
type ReadinessHandler struct {
	sync  ports.SnapshotReader
	redis *redis.Client
}

func NewReadinessHandler(sync ports.SnapshotReader, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{sync: sync, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	resp := readinessResponse{
		Status:       "ready",
		Dependencies: map[string]dependencyStatus{},
	}

	if err := h.sync.Ready(); err != nil {
		resp.Status = "not_ready"
		resp.Dependencies["gateway"] = dependencyStatus{Status: "down", Error: err.Error()}
	} else {
		resp.Dependencies["gateway"] = dependencyStatus{Status: "up"}
	}

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Status = "not_ready"
			resp.Dependencies["redis"] = dependencyStatus{Status: "down", Error: err.Error()}
		} else {
			resp.Dependencies["redis"] = dependencyStatus{Status: "up"}
		}
	}

	code := http.StatusOK
	if resp.Status != "ready" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}

package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/socops/ticket-analytics/internal/dataset"
	"github.com/socops/ticket-analytics/internal/observability"
)

// Dependency is an optional backing service probed by readiness checks.
type Dependency interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName  string
	version      string
	snapshot     *dataset.Snapshot
	dependencies map[string]Dependency
	metrics      *observability.Metrics
}

// NewHealthHandler returns a new handler instance. Dependencies that are not
// enabled are left out of readiness.
func NewHealthHandler(serviceName, version string, snapshot *dataset.Snapshot, dependencies map[string]Dependency, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{
		serviceName:  serviceName,
		version:      version,
		snapshot:     snapshot,
		dependencies: dependencies,
		metrics:      metrics,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports the loaded dataset sizes and checks enabled dependencies.
// Degraded datasets are reported but do not fail readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true
	for name, dep := range h.dependencies {
		if dep == nil || !dep.Enabled() {
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
		} else {
			depStatus[name] = "ok"
		}
	}

	degraded := h.snapshot.Degraded
	if degraded == nil {
		degraded = []string{}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"version":      h.snapshot.Version,
			"loaded_at":    h.snapshot.LoadedAt,
			"datasets":     h.snapshot.Counts(),
			"degraded":     degraded,
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Metrics exposes the in-memory request and cache counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}

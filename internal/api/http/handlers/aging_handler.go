package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/socops/ticket-analytics/internal/analytics"
	"github.com/socops/ticket-analytics/internal/service"
)

// AgingHandler serves the pre-aggregated aging summary.
type AgingHandler struct {
	service *service.AnalyticsService
}

// NewAgingHandler constructs handler.
func NewAgingHandler(analyticsService *service.AnalyticsService) *AgingHandler {
	return &AgingHandler{service: analyticsService}
}

// FilterOptions GET /api/aging-filter-options.
func (h *AgingHandler) FilterOptions(c *fiber.Ctx) error {
	return c.JSON(h.service.AgingFilterOptions(c.UserContext()))
}

// Summary GET /api/aging-summary.
func (h *AgingHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.service.AgingSummary(c.UserContext(), analytics.AgingFilter{
		CSP:         c.Query("CSP"),
		Environment: c.Query("Environment"),
		AlertType:   c.Query("AlertType"),
		Priority:    c.Query("Priority"),
	}))
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/socops/ticket-analytics/internal/service"
)

// HeartbeatHandler serves the health-check ticket series.
type HeartbeatHandler struct {
	service *service.AnalyticsService
}

// NewHeartbeatHandler constructs handler.
func NewHeartbeatHandler(analyticsService *service.AnalyticsService) *HeartbeatHandler {
	return &HeartbeatHandler{service: analyticsService}
}

// ConfigRuleHeartbeat GET /api/configrule-heartbeat.
func (h *HeartbeatHandler) ConfigRuleHeartbeat(c *fiber.Ctx) error {
	in, err := heartbeatInput(c)
	if err != nil {
		return err
	}
	resp, err := h.service.ConfigRuleHeartbeat(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Status GET /api/heartbeat-status.
func (h *HeartbeatHandler) Status(c *fiber.Ctx) error {
	in, err := heartbeatInput(c)
	if err != nil {
		return err
	}
	resp, err := h.service.HeartbeatStatus(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func heartbeatInput(c *fiber.Ctx) (service.HeartbeatInput, error) {
	year, err := queryInt(c, "year", 0)
	if err != nil {
		return service.HeartbeatInput{}, err
	}
	return service.HeartbeatInput{
		CSP:               c.Query("csp"),
		Year:              year,
		Environment:       c.Query("environment"),
		NarrowEnvironment: c.Query("narrow_environment"),
		StartDate:         c.Query("start_date"),
		EndDate:           c.Query("end_date"),
	}, nil
}

package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/socops/ticket-analytics/internal/service"
)

// ReportsHandler serves the pivot and trend reports.
type ReportsHandler struct {
	service *service.AnalyticsService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(analyticsService *service.AnalyticsService) *ReportsHandler {
	return &ReportsHandler{service: analyticsService}
}

// CSPVsPriority GET /api/csp-vs-priority.
func (h *ReportsHandler) CSPVsPriority(c *fiber.Ctx) error {
	resp, err := h.service.CSPVsPriority(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AppCodeVsPriority GET /api/appcode-vs-priority.
func (h *ReportsHandler) AppCodeVsPriority(c *fiber.Ctx) error {
	resp, err := h.service.AppCodeVsPriority(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// EnvironmentSummary GET /api/environment-summary.
func (h *ReportsHandler) EnvironmentSummary(c *fiber.Ctx) error {
	year, err := queryInt(c, "year", 0)
	if err != nil {
		return err
	}
	resp, err := h.service.EnvironmentSummary(c.UserContext(), service.EnvironmentSummaryInput{
		Year:              year,
		Environment:       c.Query("environment"),
		NarrowEnvironment: c.Query("narrow_environment"),
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// TicketCountByAppCode GET /api/reports/ticket-count-by-appcode.
func (h *ReportsHandler) TicketCountByAppCode(c *fiber.Ctx) error {
	return serveScoped(c, h.service.TicketCountByAppCode)
}

// TotalTicketCountByAppCode GET /api/reports/total-ticket-count-by-appcode.
func (h *ReportsHandler) TotalTicketCountByAppCode(c *fiber.Ctx) error {
	return serveScoped(c, h.service.TotalTicketCountByAppCode)
}

// ControlCountByAppCode GET /api/reports/control-count-by-appcode.
func (h *ReportsHandler) ControlCountByAppCode(c *fiber.Ctx) error {
	return serveScoped(c, h.service.ControlCountByAppCode)
}

// Heatmap GET /api/reports/heatmap.
func (h *ReportsHandler) Heatmap(c *fiber.Ctx) error {
	return serveScoped(c, h.service.Heatmap)
}

// AppCodeTrends GET /api/appcode-trends.
func (h *ReportsHandler) AppCodeTrends(c *fiber.Ctx) error {
	in, err := trendsInput(c)
	if err != nil {
		return err
	}
	resp, err := h.service.AppCodeTrends(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AppCodeDailyTrends GET /api/appcode-trends-daily.
func (h *ReportsHandler) AppCodeDailyTrends(c *fiber.Ctx) error {
	year, err := queryInt(c, "year", 0)
	if err != nil {
		return err
	}
	month, err := queryInt(c, "month", 0)
	if err != nil {
		return err
	}
	resp, err := h.service.AppCodeDailyTrends(c.UserContext(), service.AppCodeDailyTrendsInput{
		Year:     year,
		Month:    month,
		CSP:      c.Query("csp"),
		AppCodes: service.SplitList(c.Query("app_codes")),
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ConfigRuleTrends GET /api/appcode-configrule-trends.
func (h *ReportsHandler) ConfigRuleTrends(c *fiber.Ctx) error {
	in, err := trendsInput(c)
	if err != nil {
		return err
	}
	resp, err := h.service.ConfigRuleTrends(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func reportScope(c *fiber.Ctx) (service.ReportScope, error) {
	year, err := queryInt(c, "year", 0)
	if err != nil {
		return service.ReportScope{}, err
	}
	return service.ReportScope{
		Year:              year,
		CSP:               c.Query("csp"),
		Environment:       c.Query("environment"),
		NarrowEnvironment: c.Query("narrow_environment"),
	}, nil
}

func trendsInput(c *fiber.Ctx) (service.AppCodeTrendsInput, error) {
	scope, err := reportScope(c)
	if err != nil {
		return service.AppCodeTrendsInput{}, err
	}
	return service.AppCodeTrendsInput{Scope: scope, AppCodes: service.SplitList(c.Query("app_codes"))}, nil
}

func serveScoped[T any](c *fiber.Ctx, run func(context.Context, service.ReportScope) (T, error)) error {
	scope, err := reportScope(c)
	if err != nil {
		return err
	}
	resp, err := run(c.UserContext(), scope)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/socops/ticket-analytics/internal/analytics"
	"github.com/socops/ticket-analytics/internal/service"
)

// Per-column filter parameters. The environment columns carry a prefix so
// they do not collide with the global selectors.
var columnParams = map[string]string{
	"Key":                       "Key",
	"Summary":                   "Summary",
	"Priority":                  "Priority",
	"CSP":                       "CSP",
	"AppCode":                   "AppCode",
	"column_environment":        "Environment",
	"column_narrow_environment": "NarrowEnvironment",
	"AlertType":                 "AlertType",
	"ConfigRule":                "ConfigRule",
	"Account":                   "Account",
}

// TicketsHandler serves the ticket table and its CSV export.
type TicketsHandler struct {
	service *service.AnalyticsService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(analyticsService *service.AnalyticsService) *TicketsHandler {
	return &TicketsHandler{service: analyticsService}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return err
	}
	size, err := queryInt(c, "size", 25)
	if err != nil {
		return err
	}
	global, err := globalFilter(c, "year", "global_environment", "global_narrow_environment")
	if err != nil {
		return err
	}

	columns := make(map[string]string, len(columnParams))
	for param, column := range columnParams {
		if v := c.Query(param); v != "" {
			columns[column] = v
		}
	}

	resp, err := h.service.ListTickets(c.UserContext(), service.TicketListInput{
		Page:      page,
		Size:      size,
		SortBy:    c.Query("sort_by", "Key"),
		SortOrder: c.Query("sort_order", "asc"),
		Global:    global,
		Columns:   columns,
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// FilterOptions GET /api/tickets-filter-options.
func (h *TicketsHandler) FilterOptions(c *fiber.Ctx) error {
	resp, err := h.service.TicketFilterOptions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Download GET /api/download_tickets.
func (h *TicketsHandler) Download(c *fiber.Ctx) error {
	global, err := globalFilter(c, "global_year", "global_environment", "global_narrow_environment")
	if err != nil {
		return err
	}
	body, err := h.service.ExportTickets(c.UserContext(), service.ExportInput{
		SortField:      c.Query("sortField"),
		SortOrder:      c.Query("sortOrder"),
		Filters:        c.Query("filters"),
		Global:         global,
		VisibleColumns: c.Query("visibleColumns"),
	})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, analytics.ExportContentType)
	c.Set(fiber.HeaderContentDisposition, analytics.ExportDisposition)
	return c.Send(body)
}

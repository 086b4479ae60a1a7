package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/socops/ticket-analytics/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Tickets   *handlers.TicketsHandler
	Reports   *handlers.ReportsHandler
	Heartbeat *handlers.HeartbeatHandler
	Aging     *handlers.AgingHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/tickets-filter-options", cfg.Tickets.FilterOptions)
	api.Get("/download_tickets", cfg.Tickets.Download)

	api.Get("/csp-vs-priority", cfg.Reports.CSPVsPriority)
	api.Get("/appcode-vs-priority", cfg.Reports.AppCodeVsPriority)
	api.Get("/environment-summary", cfg.Reports.EnvironmentSummary)
	api.Get("/appcode-trends", cfg.Reports.AppCodeTrends)
	api.Get("/appcode-trends-daily", cfg.Reports.AppCodeDailyTrends)
	api.Get("/appcode-configrule-trends", cfg.Reports.ConfigRuleTrends)

	reports := api.Group("/reports")
	reports.Get("/ticket-count-by-appcode", cfg.Reports.TicketCountByAppCode)
	reports.Get("/total-ticket-count-by-appcode", cfg.Reports.TotalTicketCountByAppCode)
	reports.Get("/control-count-by-appcode", cfg.Reports.ControlCountByAppCode)
	reports.Get("/heatmap", cfg.Reports.Heatmap)

	api.Get("/configrule-heartbeat", cfg.Heartbeat.ConfigRuleHeartbeat)
	api.Get("/heartbeat-status", cfg.Heartbeat.Status)

	api.Get("/aging-filter-options", cfg.Aging.FilterOptions)
	api.Get("/aging-summary", cfg.Aging.Summary)
}

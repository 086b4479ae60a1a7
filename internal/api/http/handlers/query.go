package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/socops/ticket-analytics/internal/analytics"
	apperrors "github.com/socops/ticket-analytics/pkg/util"
)

// queryInt reads an integer parameter. Absent or blank values yield def;
// anything unparsable is a validation error.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(key+" must be an integer", map[string]any{key: raw})
	}
	return v, nil
}

// globalFilter reads the dashboard-wide year and environment selectors
// under the given parameter names.
func globalFilter(c *fiber.Ctx, yearKey, envKey, narrowKey string) (analytics.GlobalFilter, error) {
	year, err := queryInt(c, yearKey, 0)
	if err != nil {
		return analytics.GlobalFilter{}, err
	}
	return analytics.GlobalFilter{
		Year:              year,
		Environment:       c.Query(envKey),
		NarrowEnvironment: c.Query(narrowKey),
	}, nil
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"peerlend-backend/internal/infrastructure/metrics"
)

// ObserveOps counts lifecycle calls per route with a coarse outcome label.
func ObserveOps(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			code := c.Response().Status
			outcome := "ok"
			switch {
			case code >= 500:
				outcome = "error"
			case code >= 400:
				outcome = "rejected"
			}
			m.ObserveOp(c.Request().Method+" "+c.Path(), outcome)
			return err
		}
	}
}

package httpcontroller

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// configureMiddleware sets up middleware for the server.
func (s *Server) configureMiddleware() {
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.Gzip())
	s.Echo.Use(s.requestLogMiddleware())
	if s.Metrics != nil {
		s.Echo.Use(s.metricsMiddleware())
	}
}

// requestLogMiddleware logs each request with latency and status.
func (s *Server) requestLogMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			s.webLogger.Info("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"ip", c.RealIP())
			return err
		}
	}
}

// metricsMiddleware records request counters and latency histograms.
// The route pattern is used as the path label to keep cardinality down.
func (s *Server) metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			s.Metrics.HTTP.RecordRequest(
				c.Request().Method,
				path,
				c.Response().Status,
				time.Since(start).Seconds(),
			)
			return err
		}
	}
}

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logger logs each HTTP request as one structured line: request_id, broker id
// when present, method, path, status, and latency in milliseconds.
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Collect fields after the handler ran to capture the final status.
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		principal, _ := c.Locals(PrincipalLocalKey).(string)
		status := c.Response().StatusCode()
		latency := float64(time.Since(start).Microseconds()) / 1000.0

		log.Info("request",
			zap.String("request_id", rid),
			zap.String("broker_id", principal),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("latency", latency),
		)

		return err
	}
}

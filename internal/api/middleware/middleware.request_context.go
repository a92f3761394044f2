package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/nadiag01/apre/internal/logger"
	"github.com/sirupsen/logrus"
)

// RequestContextMiddleware gắn request ID vào context của request để tầng service log cùng ID,
// và ghi thời gian xử lý vào performance logger.
// Phải đăng ký sau requestid middleware.
func RequestContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		started := time.Now()
		rid := logger.RequestID(c)
		if rid != "" {
			c.Locals(string(logger.RequestIDKey), rid)
			c.SetContext(logger.ContextWithRequestID(c.Context(), rid))
		}

		err := c.Next()

		logger.GetPerformanceLogger().WithFields(logrus.Fields{
			"request_id":  rid,
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(started).Milliseconds(),
		}).Debug("Request handled")
		return err
	}
}

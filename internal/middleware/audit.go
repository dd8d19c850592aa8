package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ccms-app/dashboard/internal/auth"
	"github.com/ccms-app/dashboard/internal/logging"
)

// Audit emits one structured line per request with the outcome and whether
// a user was signed in while it was served.
func Audit(logger *slog.Logger, authCtx *auth.Context) fiber.Handler {
	logger = logging.Component(logger, "audit")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("duration", time.Since(start)),
			slog.Bool("signed_in", authCtx != nil && authCtx.IsAuthenticated()),
		}
		if requestID := RequestIDFrom(c); requestID != "" {
			attrs = append(attrs, slog.String("request_id", requestID))
		}
		if location := c.GetRespHeader(fiber.HeaderLocation); location != "" {
			attrs = append(attrs, slog.String("redirect", location))
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
			logger.Error("request completed", attrs...)
			return err
		}

		logger.Info("request completed", attrs...)
		return nil
	}
}

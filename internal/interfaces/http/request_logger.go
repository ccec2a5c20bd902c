package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/EspacioDatos-api/pkg/logger"
)

// RequestLogger emite un evento por petición. Se registra antes de las rutas, así que el
// usuario solo aparece si AuthMiddleware llegó a cargarlo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}

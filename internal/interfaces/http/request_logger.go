package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexuswms/nexus-api/pkg/logger"
)

// RequestLogger registra método, ruta, status, latencia e IP de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		log.Info().
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.IP()).
			Msg("HTTP request")

		return err
	}
}

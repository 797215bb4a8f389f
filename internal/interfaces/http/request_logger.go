package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/pkg/logger"
	"github.com/jhoicas/tienda-api/pkg/metrics"
)

// RequestLogger loguea cada petición con severidad según la clase de status
// y alimenta las métricas Prometheus. Nunca vuelca cuerpos de petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		route := c.Route().Path
		metrics.RecordHTTPRequest(c.Method(), route, strconv.Itoa(status), elapsed)

		ev := log.Debug()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("ip", c.IP()).
			Msg("http")
		return err
	}
}

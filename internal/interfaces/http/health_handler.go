package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler responde el estado del proceso.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler fija el instante de arranque para calcular el uptime.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         ops
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

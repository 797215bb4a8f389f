package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// respondError mapea errores de dominio al envelope uniforme. Los use cases
// levantan errores; esta capa solo traduce. Un error no clasificado se
// responde como 500 genérico (el detalle queda en el log, no en el cliente).
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status := statusFor(err)

	if status >= fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Method()).
			Str("url", c.OriginalURL()).
			Str("route", c.Route().Path).
			Str("ip", c.IP()).
			Msg("error interno")
		return c.Status(status).JSON(dto.Fail(status, "Error interno del servidor"))
	}

	// 4xx: severidad baja y sin volcar cuerpos de la petición.
	log.Warn().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Msg("petición rechazada")
	return c.Status(status).JSON(dto.Fail(status, err.Error()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrRoleInUse),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrExtensionNotAllowed):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRoleNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// notFound respuesta 404 con mensaje específico del recurso.
func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Fail(fiber.StatusNotFound, message))
}

// badRequest respuesta 400 de validación superficial en el handler.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(fiber.StatusBadRequest, message))
}

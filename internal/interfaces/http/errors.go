package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/inventory-stores/internal/application/dto"
	"github.com/tu-usuario/inventory-stores/internal/domain"
)

// respondError mapea un error de dominio a su status HTTP y serializa
// código+mensaje+detalles. Cualquier otro error se loguea del lado servidor y
// colapsa a 500 con mensaje genérico, sin filtrar detalle interno.
func respondError(c *fiber.Ctx, err error) error {
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		return c.Status(domErr.Status).JSON(dto.ErrorResponse{
			Error:   domErr.Code,
			Message: domErr.Message,
			Details: domErr.Details,
		})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error inesperado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error:   "internal_error",
		Message: "Ha ocurrido un error interno del servidor",
	})
}

// respondInvalidBody respuesta 400 para cuerpos que no parsean.
func respondInvalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "invalid_body",
		Message: "cuerpo inválido",
	})
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nexuswms/nexus-api/internal/application/dto"
	"github.com/nexuswms/nexus-api/internal/domain"
)

// respondError mapea los errores de dominio a status HTTP y códigos estables
// que la consola puede mostrar. Cualquier otro error es un 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrPolicy):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "POLICY", Message: err.Error()})
	case errors.Is(err, domain.ErrAuthority):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "AUTHORITY", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

var validate = validator.New()

// parseBody decodifica el body JSON y aplica las reglas `validate` del DTO.
// El caller responde 400 con el mensaje devuelto.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errors.New("cuerpo inválido")
	}
	return validate.Struct(out)
}

// badRequest respuesta 400 con código VALIDATION.
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

// writeDomainError traduce los sentinelas de dominio a HTTP. Los errores de
// validación de negocio son 400, la unicidad 409, y todo lo no mapeado 500.
// ErrNotFound cubre también los accesos cross-tenant: mismo 404, sin filtrar
// existencia.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrAccountSuspended):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "ACCOUNT_SUSPENDED", Message: "Account suspended"})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrBusinessNameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrBusinessRequired),
		errors.Is(err, domain.ErrBusinessNotFound),
		errors.Is(err, domain.ErrOwnerEndpoint),
		errors.Is(err, domain.ErrAdminUserProtected),
		errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrBusinessHasUsers),
		errors.Is(err, domain.ErrPendingEditLocked),
		errors.Is(err, domain.ErrNotSubmittable),
		errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrReasonRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

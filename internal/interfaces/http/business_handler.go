package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// BusinessHandler panel admin de negocios.
type BusinessHandler struct {
	uc *usecase.BusinessUseCase
}

// NewBusinessHandler construye el handler.
func NewBusinessHandler(uc *usecase.BusinessUseCase) *BusinessHandler {
	return &BusinessHandler{uc: uc}
}

// List godoc
// @Summary      Listar negocios con agregados (solo admin)
// @Tags         businesses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BusinessResponse
// @Router       /api/businesses [get]
func (h *BusinessHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar negocio (solo admin)
// @Tags         businesses
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del negocio"
// @Param        body  body  dto.UpdateBusinessRequest  true  "Nuevo nombre"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/businesses/{id} [patch]
func (h *BusinessHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBusinessRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.Update(c.Params("id"), in); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar negocio vacío (solo admin)
// @Tags         businesses
// @Security     Bearer
// @Param        id  path  string  true  "ID del negocio"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/businesses/{id} [delete]
func (h *BusinessHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

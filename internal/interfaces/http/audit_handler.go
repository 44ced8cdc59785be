package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// AuditHandler consulta y limpieza de la bitácora (solo admin).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar eventos de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        action  query  string  false  "Filtrar por acción"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.AuditLogResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Query("action"), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar la bitácora
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/audit [delete]
func (h *AuditHandler) Clear(c *fiber.Ctx) error {
	deleted, err := h.uc.Clear()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

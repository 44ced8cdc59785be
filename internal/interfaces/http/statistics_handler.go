package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// StatisticsHandler métricas globales y por negocio.
type StatisticsHandler struct {
	uc *usecase.StatisticsUseCase
}

// NewStatisticsHandler construye el handler.
func NewStatisticsHandler(uc *usecase.StatisticsUseCase) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

// Admin godoc
// @Summary      Estadísticas globales (solo admin)
// @Tags         statistics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminStatisticsResponse
// @Router       /api/statistics/admin [get]
func (h *StatisticsHandler) Admin(c *fiber.Ctx) error {
	out, err := h.uc.AdminStatistics(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Business godoc
// @Summary      Estadísticas del negocio del actor
// @Tags         statistics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BusinessStatisticsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/statistics/business [get]
func (h *StatisticsHandler) Business(c *fiber.Ctx) error {
	out, err := h.uc.BusinessStatistics(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// ProductHandler maneja el CRUD de productos y las acciones del flujo de
// aprobación. Cada acción parte de GetScoped: un producto de otro negocio
// es un 404 para el actor.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto (nace en draft)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos visibles para el actor
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	page.DefaultPage()
	out, err := h.uc.List(GetActor(c), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetScoped(GetActor(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if product == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Editar un producto aprobado lo devuelve a pending_approval.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	actor := GetActor(c)
	product, err := h.uc.GetScoped(actor, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if product == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Update(c.Context(), actor, product, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar producto a aprobación
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/submit [post]
func (h *ProductHandler) Submit(c *fiber.Ctx) error {
	actor := GetActor(c)
	product, err := h.uc.GetScoped(actor, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if product == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	out, err := h.uc.SubmitForApproval(c.Context(), actor, product)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar producto pendiente
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/approve [post]
func (h *ProductHandler) Approve(c *fiber.Ctx) error {
	actor := GetActor(c)
	product, err := h.uc.GetScoped(actor, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if product == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	out, err := h.uc.Approve(c.Context(), actor, product)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar producto pendiente (motivo obligatorio)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.RejectProductRequest  true  "Motivo del rechazo"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reject [post]
func (h *ProductHandler) Reject(c *fiber.Ctx) error {
	actor := GetActor(c)
	product, err := h.uc.GetScoped(actor, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if product == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	var in dto.RejectProductRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Reject(c.Context(), actor, product, in.Reason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (solo admin)
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	actor := GetActor(c)
	product, err := h.uc.GetScoped(actor, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if product == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	if err := h.uc.Delete(c.Context(), actor, product); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PublicList godoc
// @Summary      Catálogo público de productos aprobados
// @Description  Sin autenticación. Respaldado por una caché Redis de 60s.
// @Tags         public
// @Produce      json
// @Success      200  {array}  dto.PublicProductResponse
// @Router       /api/public/products [get]
func (h *ProductHandler) PublicList(c *fiber.Ctx) error {
	out, err := h.uc.PublicList(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

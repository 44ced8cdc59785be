package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// UserHandler maneja la gestión de usuarios de negocio.
// El alcance por tenant lo resuelve el use case: un usuario fuera del
// negocio del actor responde 404, nunca 403.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// CreateBusinessOwner godoc
// @Summary      Crear negocio con su owner (solo admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBusinessOwnerRequest  true  "Negocio y owner"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/business-owner [post]
func (h *UserHandler) CreateBusinessOwner(c *fiber.Ctx) error {
	var in dto.CreateBusinessOwnerRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.CreateBusinessOwner(c.Context(), GetActor(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Create godoc
// @Summary      Crear usuario de negocio
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.CreateBusinessUser(c.Context(), GetActor(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios visibles para el actor
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener usuario por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetScopedUser(GetActor(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if user == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.ToUserResponse(user))
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	actor := GetActor(c)
	user, err := h.uc.GetScopedUser(actor, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if user == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	var in dto.UpdateUserRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.UpdateBusinessUser(c.Context(), actor, user, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor := GetActor(c)
	user, err := h.uc.GetScopedUser(actor, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if user == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	if err := h.uc.DeleteBusinessUser(c.Context(), actor, user); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

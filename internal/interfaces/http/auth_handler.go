package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
)

// AuthHandler maneja login, registro público de viewers y el perfil propio.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// RegisterViewer godoc
// @Summary      Registro público con rol viewer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ViewerRegisterRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) RegisterViewer(c *fiber.Ctx) error {
	var in dto.ViewerRegisterRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.RegisterViewer(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor := GetActor(c)
	out, err := h.uc.Me(actor.ID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Editar el propio perfil
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/me [patch]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	actor := GetActor(c)
	var in dto.UpdateProfileRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.UpdateProfile(actor.ID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

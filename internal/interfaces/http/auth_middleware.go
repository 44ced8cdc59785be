package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/pkg/jwt"
)

// Local key del actor autenticado en Fiber.
const localActor = "actor"

// AuthMiddleware valida el Bearer Token JWT y construye el actor en c.Locals.
// El actor lleva id, rol, negocio y flag de superusuario tomados del token;
// los services re-validan las reglas finas con estos mismos datos.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if claims.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		c.Locals(localActor, &entity.User{
			ID:          claims.UserID,
			Role:        claims.Role,
			BusinessID:  claims.BusinessID,
			IsSuperuser: claims.Superuser,
			IsActive:    true,
		})
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto (después del middleware de auth).
func GetActor(c *fiber.Ctx) *entity.User {
	v := c.Locals(localActor)
	if v == nil {
		return nil
	}
	actor, _ := v.(*entity.User)
	return actor
}

// RequireRole autoriza el acceso a los roles indicados. Un superusuario pasa
// siempre (mismo escape hatch que entity.User.HasRole). Debe usarse DESPUÉS
// de AuthMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "actor no encontrado en el contexto"})
		}
		for _, role := range allowed {
			if actor.HasRole(role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta acción"})
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ProductUC    *usecase.ProductUseCase
	BusinessUC   *usecase.BusinessUseCase
	StatisticsUC *usecase.StatisticsUseCase
	AuditUC      *usecase.AuditUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. RequireRole es la puerta gruesa por
// rol; las reglas finas (tenant, estado, dueño) viven en los use cases.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth y catálogo público (sin token)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.RegisterViewer)

	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/public/products", productHandler.PublicList)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil propio
	protected.Get("/auth/me", authHandler.Me)
	protected.Patch("/auth/me", authHandler.UpdateProfile)

	// Users (admin y business_owner)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Post("/business-owner", RequireRole(entity.RoleAdmin), userHandler.CreateBusinessOwner)
	users.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBusinessOwner), userHandler.Create)
	users.Get("/", RequireRole(entity.RoleAdmin, entity.RoleBusinessOwner), userHandler.List)
	users.Get("/:id", RequireRole(entity.RoleAdmin, entity.RoleBusinessOwner), userHandler.GetByID)
	users.Patch("/:id", RequireRole(entity.RoleAdmin, entity.RoleBusinessOwner), userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleBusinessOwner), userHandler.Delete)

	// Products (lectura para cualquier autenticado; escritura según rol)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBusinessOwner, entity.RoleEditor), productHandler.Create)
	products.Patch("/:id", RequireRole(entity.RoleAdmin, entity.RoleBusinessOwner, entity.RoleEditor), productHandler.Update)
	products.Post("/:id/submit", RequireRole(entity.RoleAdmin, entity.RoleBusinessOwner, entity.RoleEditor), productHandler.Submit)
	products.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleApprover), productHandler.Approve)
	products.Post("/:id/reject", RequireRole(entity.RoleAdmin, entity.RoleApprover), productHandler.Reject)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Businesses (panel admin)
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	businesses := protected.Group("/businesses", RequireRole(entity.RoleAdmin))
	businesses.Get("/", businessHandler.List)
	businesses.Patch("/:id", businessHandler.Update)
	businesses.Delete("/:id", businessHandler.Delete)

	// Statistics
	statsHandler := NewStatisticsHandler(deps.StatisticsUC)
	stats := protected.Group("/statistics")
	stats.Get("/admin", RequireRole(entity.RoleAdmin), statsHandler.Admin)
	stats.Get("/business", RequireRole(entity.RoleBusinessOwner, entity.RoleEditor, entity.RoleApprover), statsHandler.Business)

	// Audit (panel admin)
	auditHandler := NewAuditHandler(deps.AuditUC)
	audit := protected.Group("/audit", RequireRole(entity.RoleAdmin))
	audit.Get("/", auditHandler.List)
	audit.Delete("/", auditHandler.Clear)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/cache"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis respalda solo el cache del catálogo público: si no está
	// disponible, el listado degrada a consultas directas.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, el catálogo público operará sin cache")
	}

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	productCache := cache.NewProductCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)

	authUC := auth.NewAuthUseCase(userRepo, businessRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, businessRepo, txRunner)
	productUC := usecase.NewProductUseCase(productRepo, businessRepo, txRunner, productCache)
	businessUC := usecase.NewBusinessUseCase(businessRepo)
	statisticsUC := usecase.NewStatisticsUseCase(statsRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catálogo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		ProductUC:    productUC,
		BusinessUC:   businessUC,
		StatisticsUC: statisticsUC,
		AuditUC:      auditUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

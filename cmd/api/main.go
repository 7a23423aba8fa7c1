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
	"github.com/swaggo/swag"

	"github.com/jhoicas/rapidxcel-logistics/docs"
	"github.com/jhoicas/rapidxcel-logistics/internal/application/auth"
	"github.com/jhoicas/rapidxcel-logistics/internal/application/inventory"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/memory"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/rapidxcel-logistics/internal/interfaces/http"
	"github.com/jhoicas/rapidxcel-logistics/pkg/config"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET es obligatorio")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando API de identidad")

	ctx := context.Background()

	var (
		userRepo    repository.UserRepository
		collections repository.CollectionRepository
	)
	if cfg.DB.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		userRepo = postgres.NewUserRepository(pool)
		collections = postgres.NewCollectionRepository(pool)
	} else {
		log.Warn().Msg("sin DATABASE_URL/DB_HOST: usuarios en memoria")
		userRepo = memory.NewUserRepository()
		collections = memory.NewCollectionRepository()
	}

	var revocations repository.RevocationRepository = memory.NewRevocationRepository()
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		revocations = infraredis.NewRevocationRepository(rdb, "rx:revoked:")
	}

	authUC := auth.NewAuthUseCase(userRepo, collections, revocations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "RapidXcel Identity API",
	}))

	// Documento OpenAPI registrado por el paquete docs (swag).
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Type("json")
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "postgres": cfg.DB.Enabled})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		StockUC:      inventory.NewStockUseCase(collections),
		CookieSecure: cfg.Session.CookieSecure,
		Logger:       log,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		log.Fatal().Err(err).Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP finalizado")
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

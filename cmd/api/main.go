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
	"github.com/tu-usuario/inventory-stores/internal/application/inventory"
	"github.com/tu-usuario/inventory-stores/internal/application/usecase"
	"github.com/tu-usuario/inventory-stores/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/inventory-stores/internal/interfaces/http"
	"github.com/tu-usuario/inventory-stores/pkg/config"
	"github.com/tu-usuario/inventory-stores/pkg/logger"
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

	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inventoryUC := inventory.NewUseCase(txRunner, invRepo, storeRepo, productRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, storeRepo, invRepo, movRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Stores API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StoreUC:     storeUC,
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
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

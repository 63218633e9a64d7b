package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventory-stores/internal/application/inventory"
	"github.com/tu-usuario/inventory-stores/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StoreUC     *usecase.StoreUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *inventory.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stores
	stores := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", productHandler.GetMovements)

	// Inventory
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/", inventoryHandler.CreateInventory)
	invGroup.Post("/transfer", inventoryHandler.Transfer)
	invGroup.Get("/alerts", inventoryHandler.GetLowStockAlerts)

	// Stock por tienda
	stores.Get("/:id/inventory", inventoryHandler.GetInventoriesByStore)
}

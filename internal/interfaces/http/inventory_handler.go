package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventory-stores/internal/application/dto"
	"github.com/tu-usuario/inventory-stores/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateInventory godoc
// @Summary      Crear registro de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "productId, storeId, quantity, minStock"
// @Success      201   {object}  entity.Inventory
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) CreateInventory(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	inv, err := h.uc.CreateInventory(c.Context(), inventory.CreateInventoryInput{
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Quantity:  in.Quantity,
		MinStock:  in.MinStock,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetInventoriesByStore godoc
// @Summary      Stock de una tienda
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {array}   entity.Inventory
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/inventory [get]
func (h *InventoryHandler) GetInventoriesByStore(c *fiber.Ctx) error {
	inventories, err := h.uc.GetInventoriesByStore(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventories)
}

// Transfer godoc
// @Summary      Transferir stock entre tiendas
// @Description  Mueve quantity unidades del producto de la tienda origen a la
//               destino como unidad atómica y registra el movimiento TRANSFER.
//               Devuelve el registro origen actualizado.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "productId, sourceStoreId, targetStoreId, quantity"
// @Success      200   {object}  entity.Inventory
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	input := inventory.TransferInput{
		ProductID:     in.ProductID,
		SourceStoreID: in.SourceStoreID,
		TargetStoreID: in.TargetStoreID,
		Quantity:      in.Quantity,
		Timestamp:     time.Now(),
	}
	if in.MinStock != nil {
		input.MinStock = *in.MinStock
	}
	source, err := h.uc.Transfer(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(source)
}

// GetLowStockAlerts godoc
// @Summary      Alertas de stock bajo
// @Description  Registros con quantity < minStock en todas las tiendas.
//               404 si no hay ninguno.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   entity.Inventory
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) GetLowStockAlerts(c *fiber.Ctx) error {
	inventories, err := h.uc.GetLowStockInventories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventories)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventory-stores/internal/application/dto"
	"github.com/tu-usuario/inventory-stores/internal/application/usecase"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto con stock inicial
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto e inventario inicial"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	if in.SKU == "" || in.Name == "" || in.Description == "" || in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_error",
			Message: "name, description, category y sku son requeridos",
		})
	}
	if !in.Price.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_error",
			Message: "price debe ser un número positivo",
		})
	}
	if in.Inventory.StoreID == "" || in.Inventory.Quantity < 0 || in.Inventory.MinStock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_error",
			Message: "inventory requiere storeId y cantidades no negativas",
		})
	}
	product, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        page              query  int     false  "Página (desde 1)"
// @Param        limit             query  int     false  "Tamaño de página"
// @Param        category          query  string  false  "Filtrar por categoría"
// @Param        minPrice          query  number  false  "Precio mínimo"
// @Param        maxPrice          query  number  false  "Precio máximo"
// @Param        storeId           query  string  false  "Solo productos con stock en la tienda"
// @Param        includeInventory  query  bool    false  "Incluir inventarios por tienda"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		StoreID:  c.Query("storeId"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &v
		}
	}
	var pageReq dto.PageRequest
	if err := c.QueryParser(&pageReq); err != nil {
		return respondInvalidBody(c)
	}
	page := repository.Page{Limit: pageReq.Limit, Offset: pageReq.Offset()}
	includeInventory := c.QueryBool("includeInventory")

	out, err := h.uc.List(c.Context(), filter, page, includeInventory)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (parcial)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation_error",
			Message: "price debe ser un número positivo",
		})
	}
	product, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Delete godoc
// @Summary      Eliminar producto (soft-delete)
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// GetMovements godoc
// @Summary      Movimientos de un producto
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   entity.InventoryMovement
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) GetMovements(c *fiber.Ctx) error {
	movements, err := h.uc.GetMovements(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movements)
}

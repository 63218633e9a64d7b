package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventory-stores/internal/application/dto"
	"github.com/tu-usuario/inventory-stores/internal/application/usecase"
)

// StoreHandler maneja las peticiones HTTP para Store.
type StoreHandler struct {
	uc *usecase.StoreUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "name, location"
// @Success      201   {object}  entity.Store
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	store, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// GetByID godoc
// @Summary      Obtener tienda por ID
// @Tags         stores
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  entity.Store
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	store, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(store)
}

// List godoc
// @Summary      Listar tiendas
// @Tags         stores
// @Produce      json
// @Success      200  {array}  entity.Store
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	stores, err := h.uc.GetAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stores)
}

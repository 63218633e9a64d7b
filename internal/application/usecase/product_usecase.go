package usecase

import (
	"context"

	"github.com/tu-usuario/inventory-stores/internal/application/dto"
	"github.com/tu-usuario/inventory-stores/internal/domain"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

// ProductTxRunner ejecuta una función dentro de una transacción con repos de
// producto e inventario (crear producto con stock inicial es una unidad atómica).
type ProductTxRunner interface {
	RunProduct(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
	) error) error
}

// ProductUseCase operaciones de catálogo de productos.
type ProductUseCase struct {
	txRunner    ProductTxRunner
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	invRepo     repository.InventoryRepository
	movRepo     repository.InventoryMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner ProductTxRunner,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		invRepo:     invRepo,
		movRepo:     movRepo,
	}
}

// Create crea un producto con su stock inicial en una tienda, como unidad
// atómica. La tienda debe existir y el SKU no puede estar repetido.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	store, err := uc.storeRepo.GetByID(ctx, in.Inventory.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.NewStoreNotFound(in.Inventory.StoreID)
	}
	existing, err := uc.productRepo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewDuplicateProduct(in.SKU)
	}

	product := &entity.Product{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
	}
	err = uc.txRunner.RunProduct(ctx, func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		inv := &entity.Inventory{
			ProductID: product.ID,
			StoreID:   in.Inventory.StoreID,
			Quantity:  in.Inventory.Quantity,
			MinStock:  in.Inventory.MinStock,
		}
		return invRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update actualización parcial de un producto activo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductNotFound(id)
	}
	if !product.Active {
		return nil, domain.NewInactiveProduct(id)
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		other, err := uc.productRepo.GetBySKU(ctx, *in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.NewDuplicateProduct(*in.SKU)
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductNotFound(id)
	}
	return product, nil
}

// List lista productos activos con filtros y paginación; con
// includeInventory agrega las filas de stock por tienda y el total.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter, page repository.Page, includeInventory bool) (*dto.ProductListResponse, error) {
	products, count, err := uc.productRepo.FindAll(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Rows: make([]dto.ProductResponse, 0, len(products)), Count: count}
	if !includeInventory {
		for _, p := range products {
			out.Rows = append(out.Rows, dto.ProductResponse{Product: *p})
		}
		return out, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	inventories, err := uc.invRepo.FindByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]*entity.Inventory, len(products))
	for _, inv := range inventories {
		byProduct[inv.ProductID] = append(byProduct[inv.ProductID], inv)
	}
	for _, p := range products {
		row := dto.ProductResponse{Product: *p}
		var total int64
		for _, inv := range byProduct[p.ID] {
			row.Inventories = append(row.Inventories, dto.ProductInventoryDTO{
				ID:         inv.ID,
				StoreID:    inv.StoreID,
				Quantity:   inv.Quantity,
				MinStock:   inv.MinStock,
				IsLowStock: inv.IsLowStock(),
			})
			total += inv.Quantity
		}
		row.TotalStock = &total
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// Delete desactiva un producto (soft-delete). Sus inventarios no se tocan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.productRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewProductNotFound(id)
	}
	return nil
}

// GetMovements devuelve el historial de movimientos de un producto.
func (uc *ProductUseCase) GetMovements(ctx context.Context, id string) ([]*entity.InventoryMovement, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductNotFound(id)
	}
	return uc.movRepo.ListByProduct(ctx, id)
}

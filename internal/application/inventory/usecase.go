package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/inventory-stores/internal/domain"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

// UseCase es el motor de inventario: creación de registros de stock, consulta
// por tienda, transferencias atómicas entre tiendas con bloqueo de fila
// (SELECT FOR UPDATE) y escaneo de stock bajo.
type UseCase struct {
	txRunner    TxRunner
	invRepo     repository.InventoryRepository
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		invRepo:     invRepo,
		storeRepo:   storeRepo,
		productRepo: productRepo,
	}
}

// CreateInventoryInput entrada para crear un registro de stock explícito.
type CreateInventoryInput struct {
	ProductID string
	StoreID   string
	Quantity  int64
	MinStock  int64
}

// TransferInput entrada para una transferencia entre tiendas.
// MinStock aplica solo si el destino no tiene registro y hay que crearlo.
// Timestamp en cero se estampa con "ahora" al escribir el movimiento.
type TransferInput struct {
	ProductID     string
	SourceStoreID string
	TargetStoreID string
	Quantity      int64
	MinStock      int64
	Timestamp     time.Time
}

// CreateInventory crea un registro de stock para (producto, tienda) tras
// verificar que ambos existan.
func (uc *UseCase) CreateInventory(ctx context.Context, in CreateInventoryInput) (*entity.Inventory, error) {
	if in.Quantity < 0 || in.MinStock < 0 {
		return nil, domain.NewValidation("quantity y minStock deben ser enteros no negativos", map[string]any{
			"quantity": in.Quantity,
			"minStock": in.MinStock,
		})
	}
	store, err := uc.storeRepo.GetByID(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.NewStoreNotFound(in.StoreID)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductNotFound(in.ProductID)
	}
	inv := &entity.Inventory{
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Quantity:  in.Quantity,
		MinStock:  in.MinStock,
	}
	if err := uc.invRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInventoriesByStore devuelve el stock de una tienda con datos de tienda embebidos.
func (uc *UseCase) GetInventoriesByStore(ctx context.Context, storeID string) ([]*entity.Inventory, error) {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.NewStoreNotFound(storeID)
	}
	inventories, err := uc.invRepo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if len(inventories) == 0 {
		return nil, domain.NewNoInventoriesForStore(storeID)
	}
	return inventories, nil
}

// Transfer mueve Quantity unidades de ProductID de la tienda origen a la
// destino como unidad atómica, con registro de auditoría.
//
// Validaciones sin I/O primero (misma tienda, cantidad), luego existencia
// referencial fuera de la transacción, y dentro de la transacción: bloqueo de
// ambas filas en orden canónico, chequeo de suficiencia, mutación y log.
// Devuelve el registro ORIGEN ya decrementado como confirmación.
func (uc *UseCase) Transfer(ctx context.Context, in TransferInput) (*entity.Inventory, error) {
	if in.SourceStoreID == in.TargetStoreID {
		return nil, domain.NewSameStoreTransfer(in.SourceStoreID)
	}
	if in.Quantity <= 0 {
		return nil, domain.NewInvalidQuantity(in.Quantity)
	}

	// Chequeo batch: una sola consulta para ambas tiendas; al fallar se
	// reportan las dos porque el batch no distingue cuál falta.
	ok, err := uc.storeRepo.ExistsAll(ctx, []string{in.SourceStoreID, in.TargetStoreID})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewSourceOrTargetStoreNotFound(in.SourceStoreID, in.TargetStoreID)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductNotFound(in.ProductID)
	}

	var result *entity.Inventory
	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		source, target, err := lockStockPair(ctx, invRepo, in)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.NewInventoryNotFound(in.ProductID, in.SourceStoreID)
		}
		if source.Quantity < in.Quantity {
			return domain.NewInsufficientInventory(in.Quantity, source.Quantity)
		}

		now := time.Now()
		source.Quantity -= in.Quantity
		source.UpdatedAt = now
		if err := invRepo.UpdateQuantity(ctx, source); err != nil {
			return err
		}

		if target != nil {
			target.Quantity += in.Quantity
			target.UpdatedAt = now
			if err := invRepo.UpdateQuantity(ctx, target); err != nil {
				return err
			}
		} else {
			// Destino sin registro: upsert protegido por el único
			// (product_id, store_id); si otra transferencia concurrente lo
			// crea primero, el conflicto incrementa esa fila.
			if err := invRepo.AddQuantityUpsert(ctx, in.ProductID, in.TargetStoreID, in.Quantity, in.MinStock); err != nil {
				return err
			}
		}

		movement := &entity.InventoryMovement{
			ProductID:     in.ProductID,
			SourceStoreID: in.SourceStoreID,
			TargetStoreID: in.TargetStoreID,
			Quantity:      in.Quantity,
			Type:          entity.MovementTypeTRANSFER,
			Timestamp:     in.Timestamp,
		}
		if err := movRepo.Create(ctx, movement); err != nil {
			return err
		}
		result = source
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockStockPair bloquea las filas de origen y destino en orden canónico: id de
// tienda lexicográficamente menor primero, independiente de la dirección de la
// transferencia. Dos transferencias opuestas concurrentes sobre el mismo par
// adquieren los locks en el mismo orden y no pueden interbloquearse.
// Una fila inexistente no bloquea nada; el upsert posterior cubre esa carrera.
func lockStockPair(ctx context.Context, invRepo repository.InventoryRepository, in TransferInput) (source, target *entity.Inventory, err error) {
	first, second := in.SourceStoreID, in.TargetStoreID
	if second < first {
		first, second = second, first
	}
	for _, storeID := range []string{first, second} {
		inv, err := invRepo.GetForUpdate(ctx, in.ProductID, storeID)
		if err != nil {
			return nil, nil, err
		}
		if inv == nil {
			continue
		}
		if storeID == in.SourceStoreID {
			source = inv
		} else {
			target = inv
		}
	}
	return source, target, nil
}

// GetLowStockInventories devuelve todos los registros por debajo de su umbral
// de reorden. Un resultado vacío es una condición reportable (los dashboards
// de alertas distinguen "sin datos" de "todo sano"), no un éxito silencioso.
func (uc *UseCase) GetLowStockInventories(ctx context.Context) ([]*entity.Inventory, error) {
	inventories, err := uc.invRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(inventories) == 0 {
		return nil, domain.NewNoLowStockInventories()
	}
	return inventories, nil
}

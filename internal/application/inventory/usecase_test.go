package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/inventory-stores/internal/domain"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

// Fakes en memoria sobre los puertos de repositorio. El txRunner ejecuta la
// función directamente y restaura el estado del stock si falla, imitando el
// rollback de la transacción real.

type fakeInventoryRepo struct {
	records  map[string]*entity.Inventory // clave productID|storeID
	lowStock []*entity.Inventory

	lockOrder   []string // storeIDs en el orden en que se bloquearon
	updateCalls int
	upsertCalls int

	upsertProductID string
	upsertStoreID   string
	upsertDelta     int64
	upsertMinStock  int64

	createErr error
	updateErr error
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{records: map[string]*entity.Inventory{}}
}

func invKey(productID, storeID string) string { return productID + "|" + storeID }

func (f *fakeInventoryRepo) put(inv *entity.Inventory) {
	f.records[invKey(inv.ProductID, inv.StoreID)] = inv
}

func (f *fakeInventoryRepo) quantity(productID, storeID string) int64 {
	inv, ok := f.records[invKey(productID, storeID)]
	if !ok {
		return -1
	}
	return inv.Quantity
}

func (f *fakeInventoryRepo) snapshot() map[string]int64 {
	out := map[string]int64{}
	for k, v := range f.records {
		out[k] = v.Quantity
	}
	return out
}

func (f *fakeInventoryRepo) restore(snap map[string]int64) {
	for k, v := range f.records {
		if q, ok := snap[k]; ok {
			v.Quantity = q
		} else {
			delete(f.records, k)
		}
	}
}

func (f *fakeInventoryRepo) FindByStore(_ context.Context, storeID string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range f.records {
		if inv.StoreID == storeID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) FindByProducts(_ context.Context, productIDs []string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range f.records {
		for _, id := range productIDs {
			if inv.ProductID == id {
				out = append(out, inv)
			}
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) Create(_ context.Context, inventory *entity.Inventory) error {
	if f.createErr != nil {
		return f.createErr
	}
	inventory.ID = "inv-" + inventory.StoreID
	inventory.CreatedAt = time.Now()
	inventory.UpdatedAt = inventory.CreatedAt
	f.put(inventory)
	return nil
}

func (f *fakeInventoryRepo) GetForUpdate(_ context.Context, productID, storeID string) (*entity.Inventory, error) {
	f.lockOrder = append(f.lockOrder, storeID)
	inv, ok := f.records[invKey(productID, storeID)]
	if !ok {
		return nil, nil
	}
	return inv, nil
}

func (f *fakeInventoryRepo) UpdateQuantity(_ context.Context, inventory *entity.Inventory) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updateCalls++
	f.put(inventory)
	return nil
}

func (f *fakeInventoryRepo) AddQuantityUpsert(_ context.Context, productID, storeID string, delta, minStock int64) error {
	f.upsertCalls++
	f.upsertProductID = productID
	f.upsertStoreID = storeID
	f.upsertDelta = delta
	f.upsertMinStock = minStock
	if inv, ok := f.records[invKey(productID, storeID)]; ok {
		inv.Quantity += delta
		return nil
	}
	f.put(&entity.Inventory{
		ID:        "inv-" + storeID,
		ProductID: productID,
		StoreID:   storeID,
		Quantity:  delta,
		MinStock:  minStock,
	})
	return nil
}

func (f *fakeInventoryRepo) FindLowStock(_ context.Context) ([]*entity.Inventory, error) {
	return f.lowStock, nil
}

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
	createErr error
}

func (f *fakeMovementRepo) Create(_ context.Context, movement *entity.InventoryMovement) error {
	if f.createErr != nil {
		return f.createErr
	}
	if !movement.Type.Valid() {
		return domain.NewInvalidMovementType(string(movement.Type))
	}
	movement.ID = "mov-1"
	if movement.Timestamp.IsZero() {
		movement.Timestamp = time.Now()
	}
	f.movements = append(f.movements, movement)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeStoreRepo struct {
	stores       map[string]*entity.Store
	existsCalls  int
	existsResult bool
}

func newFakeStoreRepo(ids ...string) *fakeStoreRepo {
	f := &fakeStoreRepo{stores: map[string]*entity.Store{}, existsResult: true}
	for _, id := range ids {
		f.stores[id] = &entity.Store{ID: id, Name: "Tienda " + id, Location: "Bogotá"}
	}
	return f
}

func (f *fakeStoreRepo) Create(_ context.Context, store *entity.Store) error {
	f.stores[store.ID] = store
	return nil
}

func (f *fakeStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	return f.stores[id], nil
}

func (f *fakeStoreRepo) FindAll(_ context.Context) ([]*entity.Store, error) {
	var out []*entity.Store
	for _, s := range f.stores {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStoreRepo) ExistsAll(_ context.Context, ids []string) (bool, error) {
	f.existsCalls++
	if !f.existsResult {
		return false, nil
	}
	for _, id := range ids {
		if _, ok := f.stores[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(ids ...string) *fakeProductRepo {
	f := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, id := range ids {
		f.products[id] = &entity.Product{
			ID:     id,
			SKU:    "SKU-" + id,
			Name:   "Producto " + id,
			Price:  decimal.NewFromInt(100),
			Active: true,
		}
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, _ repository.ProductFilter, _ repository.Page) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id string) (bool, error) {
	p, ok := f.products[id]
	if !ok {
		return false, nil
	}
	p.Active = false
	return true, nil
}

// fakeTxRunner ejecuta la función con los fakes y deshace el stock si falla.
type fakeTxRunner struct {
	invRepo *fakeInventoryRepo
	movRepo *fakeMovementRepo
	runs    int
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.InventoryRepository, repository.InventoryMovementRepository) error) error {
	f.runs++
	snap := f.invRepo.snapshot()
	if err := fn(f.invRepo, f.movRepo); err != nil {
		f.invRepo.restore(snap)
		return err
	}
	return nil
}

type fixture struct {
	uc       *UseCase
	invRepo  *fakeInventoryRepo
	movRepo  *fakeMovementRepo
	stores   *fakeStoreRepo
	products *fakeProductRepo
	tx       *fakeTxRunner
}

func newFixture(storeIDs []string, productIDs []string) *fixture {
	invRepo := newFakeInventoryRepo()
	movRepo := &fakeMovementRepo{}
	stores := newFakeStoreRepo(storeIDs...)
	products := newFakeProductRepo(productIDs...)
	tx := &fakeTxRunner{invRepo: invRepo, movRepo: movRepo}
	return &fixture{
		uc:       NewUseCase(tx, invRepo, stores, products),
		invRepo:  invRepo,
		movRepo:  movRepo,
		stores:   stores,
		products: products,
		tx:       tx,
	}
}

func asDomainError(t *testing.T, err error) *domain.Error {
	t.Helper()
	var derr *domain.Error
	require.True(t, errors.As(err, &derr), "se esperaba *domain.Error, llegó %T: %v", err, err)
	return derr
}

func TestTransfer_MuevaStockYRegistreMovimiento(t *testing.T) {
	f := newFixture([]string{"store-a", "store-b"}, []string{"prod-1"})
	f.invRepo.put(&entity.Inventory{ID: "inv-a", ProductID: "prod-1", StoreID: "store-a", Quantity: 50, MinStock: 5})
	f.invRepo.put(&entity.Inventory{ID: "inv-b", ProductID: "prod-1", StoreID: "store-b", Quantity: 30, MinStock: 5})

	result, err := f.uc.Transfer(context.Background(), TransferInput{
		ProductID:     "prod-1",
		SourceStoreID: "store-a",
		TargetStoreID: "store-b",
		Quantity:      10,
	})
	require.NoError(t, err)

	// Conservación: 50+30 antes, 40+40 después.
	assert.Equal(t, int64(40), f.invRepo.quantity("prod-1", "store-a"))
	assert.Equal(t, int64(40), f.invRepo.quantity("prod-1", "store-b"))

	// Se devuelve el registro origen ya decrementado.
	require.NotNil(t, result)
	assert.Equal(t, "store-a", result.StoreID)
	assert.Equal(t, int64(40), result.Quantity)

	// Exactamente un movimiento TRANSFER con ambas tiendas.
	require.Len(t, f.movRepo.movements, 1)
	mov := f.movRepo.movements[0]
	assert.Equal(t, entity.MovementTypeTRANSFER, mov.Type)
	assert.Equal(t, "prod-1", mov.ProductID)
	assert.Equal(t, "store-a", mov.SourceStoreID)
	assert.Equal(t, "store-b", mov.TargetStoreID)
	assert.Equal(t, int64(10), mov.Quantity)
	assert.False(t, mov.Timestamp.IsZero())
}

func TestTransfer_BloqueaEnOrdenCanonico(t *testing.T) {
	f := newFixture([]string{"store-a", "store-b"}, []string{"prod-1"})
	f.invRepo.put(&entity.Inventory{ID: "inv-a", ProductID: "prod-1", StoreID: "store-a", Quantity: 50})
	f.invRepo.put(&entity.Inventory{ID: "inv-b", ProductID: "prod-1", StoreID: "store-b", Quantity: 30})

	// Transferencia en dirección "contraria" al orden lexicográfico: el lock
	// debe tomarse igual sobre store-a primero.
	_, err := f.uc.Transfer(context.Background(), TransferInput{
		ProductID:     "prod-1",
		SourceStoreID: "store-b",
		TargetStoreID: "store-a",
		Quantity:      5,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"store-a", "store-b"}, f.invRepo.lockOrder)
}

func TestTransfer_CreaDestinoConUpsert(t *testing.T) {
	f := newFixture([]string{"store-a", "store-b"}, []string{"prod-1"})
	f.invRepo.put(&entity.Inventory{ID: "inv-a", ProductID: "prod-1", StoreID: "store-a", Quantity: 50, MinStock: 5})

	result, err := f.uc.Transfer(context.Background(), TransferInput{
		ProductID:     "prod-1",
		SourceStoreID: "store-a",
		TargetStoreID: "store-b",
		Quantity:      10,
		MinStock:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), result.Quantity)

	require.Equal(t, 1, f.invRepo.upsertCalls)
	assert.Equal(t, "prod-1", f.invRepo.upsertProductID)
	assert.Equal(t, "store-b", f.invRepo.upsertStoreID)
	assert.Equal(t, int64(10), f.invRepo.upsertDelta)
	assert.Equal(t, int64(3), f.invRepo.upsertMinStock)
	assert.Equal(t, int64(10), f.invRepo.quantity("prod-1", "store-b"))
	require.Len(t, f.movRepo.movements, 1)
}

func TestTransfer_StockInsuficienteNoMuta(t *testing.T) {
	f := newFixture([]string{"store-a", "store-b"}, []string{"prod-1"})
	f.invRepo.put(&entity.Inventory{ID: "inv-a", ProductID: "prod-1", StoreID: "store-a", Quantity: 50})
	f.invRepo.put(&entity.Inventory{ID: "inv-b", ProductID: "prod-1", StoreID: "store-b", Quantity: 30})

	_, err := f.uc.Transfer(context.Background(), TransferInput{
		ProductID:     "prod-1",
		SourceStoreID: "store-a",
		TargetStoreID: "store-b",
		Quantity:      100,
	})
	derr := asDomainError(t, err)
	assert.Equal(t, "insufficient_inventory", derr.Code)
	assert.Equal(t, int64(100), derr.Details["requested"])
	assert.Equal(t, int64(50), derr.Details["available"])

	// Nada se movió ni se registró.
	assert.Equal(t, int64(50), f.invRepo.quantity("prod-1", "store-a"))
	assert.Equal(t, int64(30), f.invRepo.quantity("prod-1", "store-b"))
	assert.Zero(t, f.invRepo.updateCalls)
	assert.Empty(t, f.movRepo.movements)
}

func TestTransfer_MismaTiendaRechazaSinTocarStorage(t *testing.T) {
	f := newFixture([]string{"store-a"}, []string{"prod-1"})

	_, err := f.uc.Transfer(context.Background(), TransferInput{
		ProductID:     "prod-1",
		SourceStoreID: "store-a",
		TargetStoreID: "store-a",
		Quantity:      10,
	})
	derr := asDomainError(t, err)
	assert.Equal(t, "invalid_transfer", derr.Code)
	assert.Zero(t, f.stores.existsCalls)
	assert.Zero(t, f.tx.runs)
}

func TestTransfer_CantidadInvalida(t *testing.T) {
	f := newFixture([]string{"store-a", "store-b"}, []string{"prod-1"})

	for _, qty := range []int64{0, -5} {
		_, err := f.uc.Transfer(context.Background(), TransferInput{
			ProductID:     "prod-1",
			SourceStoreID: "store-a",
			TargetStoreID: "store-b",
			Quantity:      qty,
		})
		derr := asDomainError(t, err)
		assert.Equal(t, "invalid_quantity", derr.Code)
		assert.Equal(t, qty, derr.Details["quantity"])
	}
	assert.Zero(t, f.tx.runs)
}

func TestTransfer_TiendaInexistente(t *testing.T) {
	f := newFixture([]string{"store-a"}, []string{"prod-1"})

	_, err := f.uc.Transfer(context.Background(), TransferInput{
		ProductID:     "prod-1",
		SourceStoreID: "store-a",
		TargetStoreID: "store-x",
		Quantity:      10,
	})
	derr := asDomainError(t, err)
	assert.Equal(t, "source_or_target_store_not_found", derr.Code)
	assert.Equal(t, "store-a", derr.Details["sourceStoreId"])
	assert.Equal(t, "store-x", derr.Details["targetStoreId"])
	assert.Zero(t, f.tx.runs)
}

func TestTransfer_ProductoInexistente(t *testing.T) {
	f := newFixture([]string{"store-a", "store-b"}, nil)

	_, err := f.uc.Transfer(context.Background(), TransferInput{
		ProductID:     "prod-x",
		SourceStoreID: "store-a",
		TargetStoreID: "store-b",
		Quantity:      10,
	})
	derr := asDomainError(t, err)
	assert.Equal(t, "product_not_found", derr.Code)
	assert.Zero(t, f.tx.runs)
}

func TestTransfer_OrigenSinRegistro(t *testing.T) {
	f := newFixture([]string{"store-a", "store-b"}, []string{"prod-1"})
	// Solo existe registro en el destino.
	f.invRepo.put(&entity.Inventory{ID: "inv-b", ProductID: "prod-1", StoreID: "store-b", Quantity: 30})

	_, err := f.uc.Transfer(context.Background(), TransferInput{
		ProductID:     "prod-1",
		SourceStoreID: "store-a",
		TargetStoreID: "store-b",
		Quantity:      10,
	})
	derr := asDomainError(t, err)
	assert.Equal(t, "inventory_not_found", derr.Code)
	assert.Equal(t, int64(30), f.invRepo.quantity("prod-1", "store-b"))
	assert.Empty(t, f.movRepo.movements)
}

func TestTransfer_FalloDelLogRevierteTodo(t *testing.T) {
	f := newFixture([]string{"store-a", "store-b"}, []string{"prod-1"})
	f.invRepo.put(&entity.Inventory{ID: "inv-a", ProductID: "prod-1", StoreID: "store-a", Quantity: 50})
	f.invRepo.put(&entity.Inventory{ID: "inv-b", ProductID: "prod-1", StoreID: "store-b", Quantity: 30})
	f.movRepo.createErr = errors.New("write: broken pipe")

	_, err := f.uc.Transfer(context.Background(), TransferInput{
		ProductID:     "prod-1",
		SourceStoreID: "store-a",
		TargetStoreID: "store-b",
		Quantity:      10,
	})
	require.Error(t, err)

	// El rollback de la transacción deja el stock intacto: o todo o nada.
	assert.Equal(t, int64(50), f.invRepo.quantity("prod-1", "store-a"))
	assert.Equal(t, int64(30), f.invRepo.quantity("prod-1", "store-b"))
	assert.Empty(t, f.movRepo.movements)
}

func TestCreateInventory(t *testing.T) {
	t.Run("crea el registro con producto y tienda existentes", func(t *testing.T) {
		f := newFixture([]string{"store-a"}, []string{"prod-1"})

		inv, err := f.uc.CreateInventory(context.Background(), CreateInventoryInput{
			ProductID: "prod-1",
			StoreID:   "store-a",
			Quantity:  20,
			MinStock:  5,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, inv.ID)
		assert.Equal(t, int64(20), inv.Quantity)
		assert.Equal(t, int64(5), inv.MinStock)
		assert.Equal(t, int64(20), f.invRepo.quantity("prod-1", "store-a"))
	})

	t.Run("rechaza cantidades negativas", func(t *testing.T) {
		f := newFixture([]string{"store-a"}, []string{"prod-1"})

		_, err := f.uc.CreateInventory(context.Background(), CreateInventoryInput{
			ProductID: "prod-1",
			StoreID:   "store-a",
			Quantity:  -1,
		})
		derr := asDomainError(t, err)
		assert.Equal(t, "validation_error", derr.Code)
	})

	t.Run("rechaza tienda inexistente", func(t *testing.T) {
		f := newFixture(nil, []string{"prod-1"})

		_, err := f.uc.CreateInventory(context.Background(), CreateInventoryInput{
			ProductID: "prod-1",
			StoreID:   "store-x",
			Quantity:  5,
		})
		derr := asDomainError(t, err)
		assert.Equal(t, "store_not_found", derr.Code)
	})

	t.Run("rechaza producto inexistente", func(t *testing.T) {
		f := newFixture([]string{"store-a"}, nil)

		_, err := f.uc.CreateInventory(context.Background(), CreateInventoryInput{
			ProductID: "prod-x",
			StoreID:   "store-a",
			Quantity:  5,
		})
		derr := asDomainError(t, err)
		assert.Equal(t, "product_not_found", derr.Code)
	})
}

func TestGetInventoriesByStore(t *testing.T) {
	t.Run("devuelve el stock de la tienda", func(t *testing.T) {
		f := newFixture([]string{"store-a"}, []string{"prod-1"})
		f.invRepo.put(&entity.Inventory{ID: "inv-a", ProductID: "prod-1", StoreID: "store-a", Quantity: 10})

		out, err := f.uc.GetInventoriesByStore(context.Background(), "store-a")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "prod-1", out[0].ProductID)
	})

	t.Run("tienda inexistente", func(t *testing.T) {
		f := newFixture(nil, nil)

		_, err := f.uc.GetInventoriesByStore(context.Background(), "store-x")
		derr := asDomainError(t, err)
		assert.Equal(t, "store_not_found", derr.Code)
	})

	t.Run("tienda sin registros", func(t *testing.T) {
		f := newFixture([]string{"store-a"}, nil)

		_, err := f.uc.GetInventoriesByStore(context.Background(), "store-a")
		derr := asDomainError(t, err)
		assert.Equal(t, "no_inventories_for_store", derr.Code)
	})
}

func TestGetLowStockInventories(t *testing.T) {
	t.Run("devuelve los registros bajo el umbral", func(t *testing.T) {
		f := newFixture(nil, nil)
		f.invRepo.lowStock = []*entity.Inventory{
			{ID: "inv-a", ProductID: "prod-1", StoreID: "store-a", Quantity: 2, MinStock: 10},
		}

		out, err := f.uc.GetLowStockInventories(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.True(t, out[0].IsLowStock())
	})

	t.Run("sin registros bajo el umbral es condición reportable", func(t *testing.T) {
		f := newFixture(nil, nil)

		_, err := f.uc.GetLowStockInventories(context.Background())
		derr := asDomainError(t, err)
		assert.Equal(t, "no_low_stock_inventories", derr.Code)
	})
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/inventory-stores/internal/application/inventory"
	"github.com/tu-usuario/inventory-stores/internal/application/usecase"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and usecase.ProductTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.ProductTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Cualquier error de fn aborta la transacción y se propaga sin modificar.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInventoryRepository(tx)
	movRepo := NewInventoryMovementRepository(tx)

	if err := fn(invRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduct inicia una transacción con repos de producto e inventario
// (para crear producto con stock inicial como unidad atómica).
func (r *TxRunner) RunProduct(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	invRepo := NewInventoryRepository(tx)

	if err := fn(productRepo, invRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

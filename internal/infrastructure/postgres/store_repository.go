package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventory-stores/internal/domain"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stores (id, name, location, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, store.ID, store.Name, store.Location).
		Scan(&store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateStore(store.Name)
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID. Devuelve nil, nil si no existe.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	query := `
		SELECT id, name, location, created_at, updated_at
		FROM stores WHERE id = $1`
	var s entity.Store
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Location, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// FindAll lista todas las tiendas.
func (r *StoreRepo) FindAll(ctx context.Context) ([]*entity.Store, error) {
	query := `
		SELECT id, name, location, created_at, updated_at
		FROM stores ORDER BY created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ExistsAll verifica en una sola consulta batch que todos los IDs resuelvan a
// una tienda. Vacuamente true para lista vacía.
func (r *StoreRepo) ExistsAll(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	query := `SELECT COUNT(*) FROM stores WHERE id = ANY($1)`
	var count int
	if err := r.q.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return false, fmt.Errorf("count stores: %w", err)
	}
	return count == len(ids), nil
}

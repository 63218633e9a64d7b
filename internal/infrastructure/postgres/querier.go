package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrae el subconjunto común de *pgxpool.Pool y pgx.Tx que usan los
// repositorios. Permite construir el mismo adaptador atado al pool (operación
// suelta) o a una transacción (motor de transferencias).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

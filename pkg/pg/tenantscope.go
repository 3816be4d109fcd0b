package pg

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WithTenantScope runs fn inside a transaction scoped to a single tenant.
//
// The scope is set with set_config('app.current_tenant_id', ..., true),
// which is transaction-local: row-level-security policies on the catalog
// tables compare tenant_id against this setting, so even a query missing
// its WHERE clause cannot observe another tenant's rows. The database
// enforces the boundary, not application code.
func WithTenantScope[T any](ctx context.Context, pool *pgxpool.Pool, tenantID uuid.UUID, fn func(ctx context.Context, tx pgx.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx,
		`SELECT set_config('app.current_tenant_id', $1, true)`,
		tenantID.String(),
	); err != nil {
		return zero, errors.Join(ErrFailedToSetTenantScope, err)
	}

	out, err := fn(ctx, tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return out, nil
}

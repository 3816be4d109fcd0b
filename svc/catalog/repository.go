package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sass-store/storekit/pkg/pg"
	"github.com/sass-store/storekit/pkg/tenant"
)

// Repository is the data port of the catalog service. Implementations
// return raw query errors; availability policy (downgrading failures to
// empty collections or nil aggregates) lives in Service, not here.
type Repository interface {
	// TenantBySlug returns the tenant record for slug, or
	// tenant.ErrTenantNotFound when no row matches.
	TenantBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)

	// TenantServices returns all services of the tenant.
	TenantServices(ctx context.Context, tenantID uuid.UUID) ([]tenant.Service, error)

	// TenantProducts returns all products of the tenant.
	TenantProducts(ctx context.Context, tenantID uuid.UUID) ([]tenant.Product, error)

	// TenantStaff returns all staff members of the tenant.
	TenantStaff(ctx context.Context, tenantID uuid.UUID) ([]tenant.Staff, error)

	// FeaturedServices returns up to limit featured, active services.
	FeaturedServices(ctx context.Context, tenantID uuid.UUID, limit int) ([]tenant.Service, error)

	// FeaturedProducts returns up to limit featured, active products.
	FeaturedProducts(ctx context.Context, tenantID uuid.UUID, limit int) ([]tenant.Product, error)
}

// PgRepository implements Repository against Postgres. Every
// child-collection query runs inside a tenant-scoped transaction
// (pg.WithTenantScope), so row-level-security policies bound what a query
// can observe even if its WHERE clause is wrong.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a Repository backed by the given pool.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

func (r *PgRepository) TenantBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, name, description, mode, status,
		       branding, contact, location, quotas, created_at
		FROM tenants
		WHERE slug = $1`, slug)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadTenant, err)
	}

	t, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[tenant.Tenant])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, errors.Join(ErrFailedToLoadTenant, err)
	}
	return &t, nil
}

func (r *PgRepository) TenantServices(ctx context.Context, tenantID uuid.UUID) ([]tenant.Service, error) {
	return pg.WithTenantScope(ctx, r.pool, tenantID, func(ctx context.Context, tx pgx.Tx) ([]tenant.Service, error) {
		rows, err := tx.Query(ctx, `
			SELECT id, name, description, price, duration,
			       featured, active, image_url, metadata
			FROM services
			WHERE tenant_id = $1
			ORDER BY name`, tenantID)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadServices, err)
		}
		return pgx.CollectRows(rows, pgx.RowToStructByName[tenant.Service])
	})
}

func (r *PgRepository) TenantProducts(ctx context.Context, tenantID uuid.UUID) ([]tenant.Product, error) {
	return pg.WithTenantScope(ctx, r.pool, tenantID, func(ctx context.Context, tx pgx.Tx) ([]tenant.Product, error) {
		rows, err := tx.Query(ctx, `
			SELECT id, sku, name, description, price, category,
			       featured, active, metadata
			FROM products
			WHERE tenant_id = $1
			ORDER BY name`, tenantID)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadProducts, err)
		}
		return pgx.CollectRows(rows, pgx.RowToStructByName[tenant.Product])
	})
}

func (r *PgRepository) TenantStaff(ctx context.Context, tenantID uuid.UUID) ([]tenant.Staff, error) {
	return pg.WithTenantScope(ctx, r.pool, tenantID, func(ctx context.Context, tx pgx.Tx) ([]tenant.Staff, error) {
		rows, err := tx.Query(ctx, `
			SELECT id, name, role, email, phone, specialties,
			       photo_url, active, metadata
			FROM staff
			WHERE tenant_id = $1
			ORDER BY name`, tenantID)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadStaff, err)
		}
		return pgx.CollectRows(rows, pgx.RowToStructByName[tenant.Staff])
	})
}

func (r *PgRepository) FeaturedServices(ctx context.Context, tenantID uuid.UUID, limit int) ([]tenant.Service, error) {
	return pg.WithTenantScope(ctx, r.pool, tenantID, func(ctx context.Context, tx pgx.Tx) ([]tenant.Service, error) {
		rows, err := tx.Query(ctx, `
			SELECT id, name, description, price, duration,
			       featured, active, image_url, metadata
			FROM services
			WHERE tenant_id = $1 AND featured AND active
			ORDER BY name
			LIMIT $2`, tenantID, limit)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadServices, err)
		}
		return pgx.CollectRows(rows, pgx.RowToStructByName[tenant.Service])
	})
}

func (r *PgRepository) FeaturedProducts(ctx context.Context, tenantID uuid.UUID, limit int) ([]tenant.Product, error) {
	return pg.WithTenantScope(ctx, r.pool, tenantID, func(ctx context.Context, tx pgx.Tx) ([]tenant.Product, error) {
		rows, err := tx.Query(ctx, `
			SELECT id, sku, name, description, price, category,
			       featured, active, metadata
			FROM products
			WHERE tenant_id = $1 AND featured AND active
			ORDER BY name
			LIMIT $2`, tenantID, limit)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadProducts, err)
		}
		return pgx.CollectRows(rows, pgx.RowToStructByName[tenant.Product])
	})
}

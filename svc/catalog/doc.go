// Package catalog serves assembled tenant storefront data through a
// two-tier cache.
//
// The read path for an aggregate is process-local cache, then distributed
// cache, then repository assembly; both tiers are populated on the way
// back. A missing tenant is reported as a nil aggregate, never an error,
// except through TenantDataForPage which maps it to
// tenant.ErrTenantNotFound for HTTP handlers.
//
// The repository runs every child-collection query inside a tenant-scoped
// transaction so database row-level-security policies enforce isolation
// independently of application WHERE clauses.
package catalog

// Package pg provides the PostgreSQL plumbing for the storefront data
// layer: pooled connections with startup retry, goose migrations, error
// classification helpers, and the tenant-scope primitive.
//
// WithTenantScope is the isolation mechanism the catalog repository runs
// its child-collection queries through. It opens a transaction and sets the
// transaction-local app.current_tenant_id setting that the row-level
// security policies (see internal/db/migrations) compare against, so tenant
// isolation is enforced by the database rather than by WHERE clauses alone.
package pg

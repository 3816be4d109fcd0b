// Package tenant defines the storefront domain model: the tenant record,
// its child collections (services, products, staff), and the assembled
// aggregate the caching tiers store.
//
// It also provides the HTTP-side tenant plumbing: resolvers that extract a
// tenant slug from a request (subdomain, header, or path), middleware that
// loads the tenant through a Provider and stores it in the request
// context, and context helpers for handlers and logging.
//
// The aggregate (Data) is assembled by the catalog service; from the
// cache's perspective it is immutable between population and invalidation,
// so readers must treat shared instances as read-only.
package tenant

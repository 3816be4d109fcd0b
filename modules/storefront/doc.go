// Package storefront exposes the tenant storefront HTTP API: the cached
// tenant aggregate, featured items, cache invalidation, and health.
package storefront

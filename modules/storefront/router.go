package storefront

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// Option configures the storefront router.
type Option func(*handler)

// WithLogger sets the logger used by the handlers.
func WithLogger(log *slog.Logger) Option {
	return func(h *handler) {
		if log != nil {
			h.log = log
		}
	}
}

// Router builds the storefront API router.
//
//	GET    /tenants/{slug}           full tenant aggregate
//	GET    /tenants/{slug}/featured  featured services and products
//	DELETE /tenants/{slug}/cache     invalidate both cache tiers
//	GET    /store                    aggregate of the tenant resolved by middleware
func Router(svc CatalogService, opts ...Option) chi.Router {
	h := &handler{
		svc: svc,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Route("/tenants/{slug}", func(r chi.Router) {
		r.Get("/", h.tenantBySlug)
		r.Get("/featured", h.featured)
		r.Delete("/cache", h.invalidate)
	})
	r.Get("/store", h.store)
	return r
}

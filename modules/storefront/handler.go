package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sass-store/storekit/pkg/logger"
	"github.com/sass-store/storekit/pkg/slug"
	"github.com/sass-store/storekit/pkg/tenant"
	"github.com/sass-store/storekit/svc/catalog"
)

// CatalogService is what the storefront handlers need from the catalog
// layer. Satisfied by *catalog.Service.
type CatalogService interface {
	TenantDataForPage(ctx context.Context, slug string) (*tenant.Data, error)
	FeaturedItems(ctx context.Context, slug string, limit int) (*catalog.Featured, error)
	InvalidateCache(ctx context.Context, slug string)
}

type handler struct {
	svc CatalogService
	log *slog.Logger
}

// tenantSlug validates the {slug} URL parameter. An empty return means the
// response has already been written.
func (h *handler) tenantSlug(w http.ResponseWriter, r *http.Request) string {
	s := chi.URLParam(r, "slug")
	if !slug.IsValid(s) {
		respondError(w, http.StatusBadRequest, "invalid_slug", "tenant slug is not valid")
		return ""
	}
	return s
}

func (h *handler) tenantBySlug(w http.ResponseWriter, r *http.Request) {
	s := h.tenantSlug(w, r)
	if s == "" {
		return
	}

	data, err := h.svc.TenantDataForPage(r.Context(), s)
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		respondError(w, http.StatusNotFound, "tenant_not_found", "tenant not found")
	case err != nil:
		h.log.ErrorContext(r.Context(), "storefront read failed",
			logger.TenantSlug(s), logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load storefront")
	default:
		respondJSON(w, http.StatusOK, data)
	}
}

func (h *handler) featured(w http.ResponseWriter, r *http.Request) {
	s := h.tenantSlug(w, r)
	if s == "" {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = n
	}

	f, err := h.svc.FeaturedItems(r.Context(), s, limit)
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		respondError(w, http.StatusNotFound, "tenant_not_found", "tenant not found")
	case err != nil:
		h.log.ErrorContext(r.Context(), "featured items read failed",
			logger.TenantSlug(s), logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load featured items")
	default:
		respondJSON(w, http.StatusOK, f)
	}
}

func (h *handler) invalidate(w http.ResponseWriter, r *http.Request) {
	s := h.tenantSlug(w, r)
	if s == "" {
		return
	}

	h.svc.InvalidateCache(r.Context(), s)
	w.WriteHeader(http.StatusNoContent)
}

// store serves the storefront of the tenant resolved by the middleware
// (subdomain or header), the path used by per-tenant domains.
func (h *handler) store(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusNotFound, "tenant_not_found", "no tenant resolved for this host")
		return
	}

	data, err := h.svc.TenantDataForPage(r.Context(), t.Slug)
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		respondError(w, http.StatusNotFound, "tenant_not_found", "tenant not found")
	case err != nil:
		h.log.ErrorContext(r.Context(), "storefront read failed",
			logger.TenantSlug(t.Slug), logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load storefront")
	default:
		respondJSON(w, http.StatusOK, data)
	}
}

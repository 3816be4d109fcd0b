package tenant_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sass-store/storekit/pkg/tenant"
)

type fakeProvider struct {
	tenants map[string]*tenant.Tenant
	err     error
	calls   int
}

func (p *fakeProvider) GetBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if t, ok := p.tenants[slug]; ok {
		return t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func newFakeProvider(tenants ...*tenant.Tenant) *fakeProvider {
	p := &fakeProvider{tenants: make(map[string]*tenant.Tenant)}
	for _, t := range tenants {
		p.tenants[t.Slug] = t
	}
	return p
}

func echoTenant() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t, ok := tenant.FromContext(r.Context()); ok {
			_, _ = w.Write([]byte(t.Slug))
			return
		}
		_, _ = w.Write([]byte("no-tenant"))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	active := &tenant.Tenant{ID: uuid.New(), Slug: "acme", Name: "Acme", Mode: tenant.ModeCatalog, Status: tenant.StatusActive}
	suspended := &tenant.Tenant{ID: uuid.New(), Slug: "frozen", Name: "Frozen", Mode: tenant.ModeCatalog, Status: tenant.StatusSuspended}
	resolver := tenant.NewHeaderResolver("X-Tenant-Slug")

	t.Run("resolves tenant into context", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(resolver, newFakeProvider(active))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Tenant-Slug", "acme")
		w := httptest.NewRecorder()

		mw(echoTenant()).ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "acme", w.Body.String())
	})

	t.Run("passes through without identifier", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(resolver, newFakeProvider(active))
		w := httptest.NewRecorder()

		mw(echoTenant()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "no-tenant", w.Body.String())
	})

	t.Run("unknown tenant yields 404", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(resolver, newFakeProvider(active))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Tenant-Slug", "ghost")
		w := httptest.NewRecorder()

		mw(echoTenant()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed slug yields 400 without provider call", func(t *testing.T) {
		t.Parallel()

		provider := newFakeProvider(active)
		mw := tenant.Middleware(resolver, provider)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Tenant-Slug", "Not A Slug!")
		w := httptest.NewRecorder()

		mw(echoTenant()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, provider.calls)
	})

	t.Run("suspended tenant yields 403", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(resolver, newFakeProvider(suspended))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Tenant-Slug", "frozen")
		w := httptest.NewRecorder()

		mw(echoTenant()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("suspended tenant allowed when requireActive disabled", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(resolver, newFakeProvider(suspended), tenant.WithRequireActive(false))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Tenant-Slug", "frozen")
		w := httptest.NewRecorder()

		mw(echoTenant()).ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "frozen", w.Body.String())
	})

	t.Run("skip paths bypass resolution", func(t *testing.T) {
		t.Parallel()

		provider := newFakeProvider(active)
		mw := tenant.Middleware(resolver, provider, tenant.WithSkipPaths("/health"))
		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		r.Header.Set("X-Tenant-Slug", "acme")
		w := httptest.NewRecorder()

		mw(echoTenant()).ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, provider.calls)
	})

	t.Run("provider failure yields 500", func(t *testing.T) {
		t.Parallel()

		provider := newFakeProvider(active)
		provider.err = errors.New("connection refused")
		mw := tenant.Middleware(resolver, provider)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Tenant-Slug", "acme")
		w := httptest.NewRecorder()

		mw(echoTenant()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	handler := tenant.RequireTenant(nil)(echoTenant())

	t.Run("rejects requests without tenant", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("passes requests with tenant", func(t *testing.T) {
		t.Parallel()

		tn := &tenant.Tenant{ID: uuid.New(), Slug: "acme", Status: tenant.StatusActive}
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(tenant.WithContext(r.Context(), tn))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "acme", w.Body.String())
	})
}

package tenant_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sass-store/storekit/pkg/tenant"
)

func TestSubdomainResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewSubdomainResolver("sass-store.com")

	cases := []struct {
		host string
		want string
	}{
		{"acme.sass-store.com", "acme"},
		{"acme.sass-store.com:8080", "acme"},
		{"wonder-nails.sass-store.com", "wonder-nails"},
		{"sass-store.com", ""},
		{"www.sass-store.com", ""},
		{"a.b.sass-store.com", ""},
		{"acme.other.com", ""},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Host = tc.host

		got, err := resolver.Resolve(r)
		require.NoError(t, err, "host %q", tc.host)
		assert.Equal(t, tc.want, got, "host %q", tc.host)
	}
}

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewHeaderResolver("")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Tenant-Slug", "acme")

	got, err := resolver.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "acme", got)

	got, err = resolver.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPathResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewPathResolver(2)

	cases := []struct {
		path string
		want string
	}{
		{"/tenants/acme", "acme"},
		{"/tenants/acme/featured", "acme"},
		{"/tenants", ""},
		{"/", ""},
	}
	for _, tc := range cases {
		got, err := resolver.Resolve(httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.NoError(t, err, "path %q", tc.path)
		assert.Equal(t, tc.want, got, "path %q", tc.path)
	}

	t.Run("invalid position", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewPathResolver(0).Resolve(httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Error(t, err)
	})
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewCompositeResolver(
		tenant.NewHeaderResolver("X-Tenant-Slug"),
		tenant.NewSubdomainResolver("sass-store.com"),
	)

	t.Run("first non-empty wins", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Host = "vigistudio.sass-store.com"
		r.Header.Set("X-Tenant-Slug", "acme")

		got, err := resolver.Resolve(r)
		require.NoError(t, err)
		assert.Equal(t, "acme", got)
	})

	t.Run("falls through to later resolvers", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Host = "vigistudio.sass-store.com"

		got, err := resolver.Resolve(r)
		require.NoError(t, err)
		assert.Equal(t, "vigistudio", got)
	})
}

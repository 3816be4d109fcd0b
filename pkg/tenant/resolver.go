package tenant

import (
	"fmt"
	"net/http"
	"strings"
)

// Resolver extracts a tenant slug from an HTTP request.
type Resolver interface {
	// Resolve extracts the tenant slug from the request.
	// Returns empty string when the request carries no tenant identifier.
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(r *http.Request) (string, error)

func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// SubdomainResolver extracts the tenant slug from the request host,
// treating the first label under the configured base domain as the slug
// (e.g. "acme" from "acme.sass-store.com").
type SubdomainResolver struct {
	// BaseDomain is the storefront's shared domain, e.g. "sass-store.com".
	// Hosts that do not end in it resolve to no tenant.
	BaseDomain string
}

// NewSubdomainResolver creates a resolver for the given base domain.
func NewSubdomainResolver(baseDomain string) *SubdomainResolver {
	return &SubdomainResolver{BaseDomain: strings.TrimPrefix(baseDomain, ".")}
}

func (s *SubdomainResolver) Resolve(r *http.Request) (string, error) {
	host := r.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	if s.BaseDomain == "" || host == s.BaseDomain {
		return "", nil
	}

	suffix := "." + s.BaseDomain
	if !strings.HasSuffix(host, suffix) {
		return "", nil
	}

	sub := strings.TrimSuffix(host, suffix)
	// Only a single label counts; "a.b.base.com" is not a tenant host.
	if sub == "" || sub == "www" || strings.Contains(sub, ".") {
		return "", nil
	}
	return sub, nil
}

// HeaderResolver extracts the tenant slug from an HTTP header, typically
// set by an API gateway or the admin dashboard.
type HeaderResolver struct {
	Header string
}

// NewHeaderResolver creates a header resolver; header defaults to
// "X-Tenant-Slug".
func NewHeaderResolver(header string) *HeaderResolver {
	if header == "" {
		header = "X-Tenant-Slug"
	}
	return &HeaderResolver{Header: header}
}

func (h *HeaderResolver) Resolve(r *http.Request) (string, error) {
	return r.Header.Get(h.Header), nil
}

// PathResolver extracts the tenant slug from a URL path segment.
type PathResolver struct {
	// Position is the 1-based path segment position, e.g. 2 for
	// /tenants/{slug}/....
	Position int
}

// NewPathResolver creates a path resolver for the given 1-based position.
func NewPathResolver(position int) *PathResolver {
	return &PathResolver{Position: position}
}

func (p *PathResolver) Resolve(r *http.Request) (string, error) {
	if p.Position < 1 {
		return "", fmt.Errorf("tenant: invalid path position %d", p.Position)
	}

	path := strings.Trim(r.URL.Path, "/")
	if path == "" {
		return "", nil
	}

	parts := strings.Split(path, "/")
	if p.Position > len(parts) {
		return "", nil
	}
	return parts[p.Position-1], nil
}

// CompositeResolver tries resolvers in order and returns the first
// non-empty slug.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a resolver chain.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}
	return "", nil
}

package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sass-store/storekit/pkg/slug"
)

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type middlewareConfig struct {
	errorHandler  ErrorHandler
	skipPaths     []string
	requireActive bool
	logger        *slog.Logger
}

// Option configures the middleware.
type Option func(*middlewareConfig)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *middlewareConfig) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution.
func WithSkipPaths(paths ...string) Option {
	return func(c *middlewareConfig) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithRequireActive controls whether non-active tenants are rejected.
// Enabled by default.
func WithRequireActive(require bool) Option {
	return func(c *middlewareConfig) {
		c.requireActive = require
	}
}

// WithLogger sets the middleware logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *middlewareConfig) {
		if log != nil {
			c.logger = log
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrTenantNotActive):
		http.Error(w, "Tenant is not active", http.StatusForbidden)
	case errors.Is(err, ErrInvalidSlug):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Middleware resolves the tenant for each request and stores it in the
// request context. Requests carrying no tenant identifier pass through
// without a tenant; handlers that depend on one should be mounted behind
// RequireTenant.
//
// The provider is expected to do its own caching (the catalog service
// does); the middleware adds none.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler:  defaultErrorHandler,
		requireActive: true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !slug.IsValid(identifier) {
				cfg.errorHandler(w, r, ErrInvalidSlug)
				return
			}

			t, err := provider.GetBySlug(r.Context(), identifier)
			if err != nil {
				if !errors.Is(err, ErrTenantNotFound) {
					cfg.logger.ErrorContext(r.Context(), "tenant resolution failed",
						slog.String("tenant_slug", identifier), slog.Any("error", err))
				}
				cfg.errorHandler(w, r, err)
				return
			}

			if cfg.requireActive && t.Status != StatusActive {
				cfg.errorHandler(w, r, ErrTenantNotActive)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), t)))
		})
	}
}

// RequireTenant rejects requests whose context carries no tenant. Mount it
// on routes that cannot function without one.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a slug resolves to no tenant.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidSlug is returned when an identifier is not a well-formed slug.
	ErrInvalidSlug = errors.New("invalid tenant slug")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrTenantNotActive is returned when a resolved tenant is inactive or
	// suspended.
	ErrTenantNotActive = errors.New("tenant is not active")

	// ErrInvalidAggregate is returned when an assembled aggregate fails
	// validation at the assembly boundary.
	ErrInvalidAggregate = errors.New("invalid tenant aggregate")
)

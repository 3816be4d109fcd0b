package catalog

import "errors"

var (
	// ErrFailedToLoadTenant wraps database failures on tenant lookups.
	ErrFailedToLoadTenant = errors.New("failed to load tenant")

	// ErrFailedToLoadServices wraps database failures on service queries.
	ErrFailedToLoadServices = errors.New("failed to load services")

	// ErrFailedToLoadProducts wraps database failures on product queries.
	ErrFailedToLoadProducts = errors.New("failed to load products")

	// ErrFailedToLoadStaff wraps database failures on staff queries.
	ErrFailedToLoadStaff = errors.New("failed to load staff")
)

package tenant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mode controls which child collections a tenant's storefront carries.
type Mode string

const (
	// ModeCatalog tenants sell products only.
	ModeCatalog Mode = "catalog"
	// ModeBooking tenants offer services performed by staff.
	ModeBooking Mode = "booking"
	// ModeMixed tenants combine both.
	ModeMixed Mode = "mixed"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeCatalog, ModeBooking, ModeMixed:
		return true
	}
	return false
}

// Status is the tenant account status.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// Tenant is an isolated business account, the unit of data partitioning
// and caching. Slug is the unique routing key and is immutable once
// assigned. The configuration blobs (branding, contact, location, quotas)
// are opaque documents owned by the admin UI; this layer stores and serves
// them without validation.
type Tenant struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Slug        string          `json:"slug" db:"slug"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Mode        Mode            `json:"mode" db:"mode"`
	Status      Status          `json:"status" db:"status"`
	Branding    json.RawMessage `json:"branding,omitempty" db:"branding"`
	Contact     json.RawMessage `json:"contact,omitempty" db:"contact"`
	Location    json.RawMessage `json:"location,omitempty" db:"location"`
	Quotas      json.RawMessage `json:"quotas,omitempty" db:"quotas"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Bookable reports whether the tenant's storefront carries services and
// staff. Only booking mode does; catalog and mixed storefronts are served
// from products alone.
func (t *Tenant) Bookable() bool {
	return t.Mode == ModeBooking
}

// Service is a bookable offering of a booking-mode tenant.
type Service struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       float64         `json:"price" db:"price"`
	Duration    int             `json:"duration" db:"duration"`
	Featured    bool            `json:"featured" db:"featured"`
	Active      bool            `json:"active" db:"active"`
	ImageURL    string          `json:"image_url,omitempty" db:"image_url"`
	Metadata    json.RawMessage `json:"metadata,omitempty" db:"metadata"`
}

// Product is a catalog item. SKU is unique within a tenant.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	SKU         string          `json:"sku" db:"sku"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       float64         `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	Featured    bool            `json:"featured" db:"featured"`
	Active      bool            `json:"active" db:"active"`
	Metadata    json.RawMessage `json:"metadata,omitempty" db:"metadata"`
}

// Staff is a member of a booking-mode tenant's team.
type Staff struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Role        string          `json:"role" db:"role"`
	Email       string          `json:"email" db:"email"`
	Phone       string          `json:"phone" db:"phone"`
	Specialties []string        `json:"specialties" db:"specialties"`
	PhotoURL    string          `json:"photo_url,omitempty" db:"photo_url"`
	Active      bool            `json:"active" db:"active"`
	Metadata    json.RawMessage `json:"metadata,omitempty" db:"metadata"`
}

// Data is the fully assembled tenant aggregate: the tenant record plus its
// child collections. It is the unit the caching tiers store, and it is
// immutable between cache population and invalidation; concurrent readers
// share one assembled value and must not mutate it.
//
// Child slices are always non-nil. Services and Staff are populated only
// for booking-mode tenants; Products are always fetched.
type Data struct {
	Tenant
	Services []Service `json:"services"`
	Products []Product `json:"products"`
	Staff    []Staff   `json:"staff"`
}

// Validate checks the aggregate at the assembly boundary: identity and
// descriptive fields are required, and non-booking tenants must not carry
// services or staff.
func (d *Data) Validate() error {
	switch {
	case d.ID == uuid.Nil:
		return fmt.Errorf("%w: missing id", ErrInvalidAggregate)
	case d.Slug == "":
		return fmt.Errorf("%w: missing slug", ErrInvalidAggregate)
	case d.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidAggregate)
	case !d.Mode.Valid():
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidAggregate, d.Mode)
	case !d.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidAggregate, d.Status)
	case d.Services == nil || d.Products == nil || d.Staff == nil:
		return fmt.Errorf("%w: nil child collection", ErrInvalidAggregate)
	case !d.Bookable() && (len(d.Services) > 0 || len(d.Staff) > 0):
		return fmt.Errorf("%w: %s tenant carries booking collections", ErrInvalidAggregate, d.Mode)
	}
	return nil
}

// Provider loads tenant records from a data source. Implemented by the
// catalog service so HTTP middleware can resolve tenants without a direct
// repository dependency.
type Provider interface {
	// GetBySlug retrieves a tenant by its unique slug.
	// Returns ErrTenantNotFound when no tenant matches.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
}

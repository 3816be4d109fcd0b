package tenant_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sass-store/storekit/pkg/tenant"
)

func validData(mode tenant.Mode) *tenant.Data {
	return &tenant.Data{
		Tenant: tenant.Tenant{
			ID:     uuid.New(),
			Slug:   "acme",
			Name:   "Acme",
			Mode:   mode,
			Status: tenant.StatusActive,
		},
		Services: []tenant.Service{},
		Products: []tenant.Product{},
		Staff:    []tenant.Staff{},
	}
}

func TestDataValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid catalog aggregate", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validData(tenant.ModeCatalog).Validate())
	})

	t.Run("accepts booking aggregate with services and staff", func(t *testing.T) {
		t.Parallel()

		d := validData(tenant.ModeBooking)
		d.Services = []tenant.Service{{ID: uuid.New(), Name: "Gel Manicure", Price: 45, Duration: 60}}
		d.Staff = []tenant.Staff{{ID: uuid.New(), Name: "Carlos Ramirez", Role: "Master Stylist"}}
		require.NoError(t, d.Validate())
	})

	t.Run("rejects missing identity fields", func(t *testing.T) {
		t.Parallel()

		d := validData(tenant.ModeCatalog)
		d.ID = uuid.Nil
		assert.ErrorIs(t, d.Validate(), tenant.ErrInvalidAggregate)

		d = validData(tenant.ModeCatalog)
		d.Slug = ""
		assert.ErrorIs(t, d.Validate(), tenant.ErrInvalidAggregate)

		d = validData(tenant.ModeCatalog)
		d.Name = ""
		assert.ErrorIs(t, d.Validate(), tenant.ErrInvalidAggregate)
	})

	t.Run("rejects unknown mode and status", func(t *testing.T) {
		t.Parallel()

		d := validData(tenant.ModeCatalog)
		d.Mode = tenant.Mode("franchise")
		assert.ErrorIs(t, d.Validate(), tenant.ErrInvalidAggregate)

		d = validData(tenant.ModeCatalog)
		d.Status = tenant.Status("deleted")
		assert.ErrorIs(t, d.Validate(), tenant.ErrInvalidAggregate)
	})

	t.Run("rejects nil child collections", func(t *testing.T) {
		t.Parallel()

		d := validData(tenant.ModeCatalog)
		d.Products = nil
		assert.ErrorIs(t, d.Validate(), tenant.ErrInvalidAggregate)
	})

	t.Run("rejects booking collections on catalog tenant", func(t *testing.T) {
		t.Parallel()

		d := validData(tenant.ModeCatalog)
		d.Services = []tenant.Service{{ID: uuid.New(), Name: "stray"}}
		assert.ErrorIs(t, d.Validate(), tenant.ErrInvalidAggregate)
	})
}

func TestBookable(t *testing.T) {
	t.Parallel()

	assert.True(t, (&tenant.Tenant{Mode: tenant.ModeBooking}).Bookable())
	assert.False(t, (&tenant.Tenant{Mode: tenant.ModeCatalog}).Bookable())
	assert.False(t, (&tenant.Tenant{Mode: tenant.ModeMixed}).Bookable())
}

func TestModeStatusValid(t *testing.T) {
	t.Parallel()

	for _, m := range []tenant.Mode{tenant.ModeCatalog, tenant.ModeBooking, tenant.ModeMixed} {
		assert.True(t, m.Valid())
	}
	assert.False(t, tenant.Mode("").Valid())

	for _, s := range []tenant.Status{tenant.StatusActive, tenant.StatusInactive, tenant.StatusSuspended} {
		assert.True(t, s.Valid())
	}
	assert.False(t, tenant.Status("").Valid())
}

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sass-store/storekit/pkg/cache"
	"github.com/sass-store/storekit/pkg/logger"
	"github.com/sass-store/storekit/pkg/tenant"
)

const (
	// DefaultRemoteTTL bounds how long an assembled aggregate can stay in
	// the distributed tier. Intentionally shorter than the process-local
	// TTL would suggest: catalogs mutate often and the distributed tier is
	// the staleness bound shared across instances.
	DefaultRemoteTTL = 600 * time.Second

	// DefaultFeaturedLimit is how many featured services/products the
	// storefront homepage shows when no limit is requested.
	DefaultFeaturedLimit = 6

	// lastSeenTTL keeps last-visit markers around long enough for the
	// admin dashboard's activity view without growing unbounded.
	lastSeenTTL = 30 * 24 * time.Hour

	// lastSeenTimeout bounds the detached last-seen write; the request
	// that triggered it has already been answered.
	lastSeenTimeout = 2 * time.Second
)

// Service serves assembled tenant aggregates through a two-tier cache:
// a process-local bounded map in front of a shared distributed tier, with
// the repository as the producer of last resort.
//
// The availability policy lives here: child-collection failures downgrade
// to empty lists, assembly failures downgrade to "not found", and cache
// backend failures never surface to callers. Only a genuine missing tenant
// becomes a user-visible outcome, and only through TenantDataForPage.
type Service struct {
	repo      Repository
	local     *cache.Local[*tenant.Data]
	remote    *cache.Remote
	remoteTTL time.Duration
	log       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLocalCache replaces the default process-local cache. Tests use this
// to control TTL and size.
func WithLocalCache(c *cache.Local[*tenant.Data]) Option {
	return func(s *Service) {
		if c != nil {
			s.local = c
		}
	}
}

// WithRemoteCache sets the distributed cache tier. Without it the service
// runs on the process-local tier alone.
func WithRemoteCache(r *cache.Remote) Option {
	return func(s *Service) {
		if r != nil {
			s.remote = r
		}
	}
}

// WithRemoteTTL overrides the distributed-tier TTL for aggregates.
func WithRemoteTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.remoteTTL = d
		}
	}
}

// WithLogger sets the logger for downgraded failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a catalog service over the given repository.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		local:     cache.NewLocal[*tenant.Data](),
		remoteTTL: DefaultRemoteTTL,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ tenant.Provider = (*Service)(nil)

func withDataKey(slug string) string {
	return cache.Key("tenant", "with-data", slug)
}

func lastSeenKey(slug string) string {
	return cache.Key("tenant", "last-seen", slug)
}

// GetTenantWithData returns the assembled aggregate for slug, or nil when
// the tenant does not exist. A nil aggregate is a valid outcome, not an
// error; assembly failures are logged and reported as nil under the same
// availability policy. The returned error is reserved for caller mistakes
// and is nil on every cache and repository outcome.
//
// Read path: process-local cache, then distributed cache, then repository
// assembly. Both tiers are populated on the way back; nil is never cached
// in either tier. Two concurrent requests for the same cold slug may both
// assemble; last writer wins on cache population and both compute the same
// aggregate, so no request coalescing is applied.
func (s *Service) GetTenantWithData(ctx context.Context, slug string) (*tenant.Data, error) {
	key := withDataKey(slug)

	if data, ok := s.local.Get(key); ok {
		s.recordLastSeen(ctx, slug)
		return data, nil
	}

	data, err := cache.GetOrSet(ctx, s.remote, key, s.remoteTTL, func(ctx context.Context) (*tenant.Data, error) {
		return s.assemble(ctx, slug)
	})
	if err != nil || data == nil {
		return nil, err
	}

	s.local.Set(key, data)
	s.recordLastSeen(ctx, slug)
	return data, nil
}

// assemble is the cache producer: the tenant lookup plus the concurrent
// child-collection queries. Services and staff are fetched only for
// booking-mode tenants; products always. Each child query runs in its own
// tenant-scoped transaction because the isolation setting is
// transaction-local and the three queries run on separate connections.
func (s *Service) assemble(ctx context.Context, slug string) (*tenant.Data, error) {
	t, err := s.repo.TenantBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, tenant.ErrTenantNotFound) {
			s.log.ErrorContext(ctx, "tenant aggregate assembly failed",
				logger.TenantSlug(slug), logger.Error(err))
		}
		return nil, nil
	}

	data := &tenant.Data{
		Tenant:   *t,
		Services: []tenant.Service{},
		Products: []tenant.Product{},
		Staff:    []tenant.Staff{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data.Products = s.TenantProducts(gctx, t.ID)
		return nil
	})
	if t.Bookable() {
		g.Go(func() error {
			data.Services = s.TenantServices(gctx, t.ID)
			return nil
		})
		g.Go(func() error {
			data.Staff = s.TenantStaff(gctx, t.ID)
			return nil
		})
	}
	_ = g.Wait() // child failures already downgraded to empty lists

	if err := data.Validate(); err != nil {
		s.log.ErrorContext(ctx, "assembled tenant aggregate is invalid",
			logger.TenantSlug(slug), logger.Error(err))
		return nil, nil
	}
	return data, nil
}

// TenantServices returns the tenant's services, downgrading any query
// failure to an empty list. A catalog page renders "no services" instead
// of failing.
func (s *Service) TenantServices(ctx context.Context, tenantID uuid.UUID) []tenant.Service {
	list, err := s.repo.TenantServices(ctx, tenantID)
	if err != nil {
		s.log.ErrorContext(ctx, "services query failed, serving empty list",
			logger.TenantID(tenantID), logger.Error(err))
		return []tenant.Service{}
	}
	if list == nil {
		list = []tenant.Service{}
	}
	return list
}

// TenantProducts returns the tenant's products with the same downgrade
// policy as TenantServices.
func (s *Service) TenantProducts(ctx context.Context, tenantID uuid.UUID) []tenant.Product {
	list, err := s.repo.TenantProducts(ctx, tenantID)
	if err != nil {
		s.log.ErrorContext(ctx, "products query failed, serving empty list",
			logger.TenantID(tenantID), logger.Error(err))
		return []tenant.Product{}
	}
	if list == nil {
		list = []tenant.Product{}
	}
	return list
}

// TenantStaff returns the tenant's staff with the same downgrade policy
// as TenantServices.
func (s *Service) TenantStaff(ctx context.Context, tenantID uuid.UUID) []tenant.Staff {
	list, err := s.repo.TenantStaff(ctx, tenantID)
	if err != nil {
		s.log.ErrorContext(ctx, "staff query failed, serving empty list",
			logger.TenantID(tenantID), logger.Error(err))
		return []tenant.Staff{}
	}
	if list == nil {
		list = []tenant.Staff{}
	}
	return list
}

// TenantDataForPage is the page-handler entry point: it maps a nil
// aggregate to tenant.ErrTenantNotFound so the HTTP layer can answer 404.
// This is the only place a missing aggregate becomes an error.
func (s *Service) TenantDataForPage(ctx context.Context, slug string) (*tenant.Data, error) {
	data, err := s.GetTenantWithData(ctx, slug)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, tenant.ErrTenantNotFound
	}
	return data, nil
}

// GetBySlug implements tenant.Provider for the HTTP middleware, serving
// the tenant record out of the cached aggregate.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	data, err := s.TenantDataForPage(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &data.Tenant, nil
}

// Featured is the homepage highlight set: featured, active services and
// products, each capped independently.
type Featured struct {
	Services []tenant.Service `json:"services"`
	Products []tenant.Product `json:"products"`
}

// FeaturedItems returns up to limit featured services and products for the
// tenant behind slug. Services are only queried for booking-mode tenants.
// Featured sets are not cached; the queries are cheap and the storefront
// homepage already rides on the cached aggregate for everything else.
// Query failures downgrade each collection to empty independently.
func (s *Service) FeaturedItems(ctx context.Context, slug string, limit int) (*Featured, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	t, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	f := &Featured{
		Services: []tenant.Service{},
		Products: []tenant.Product{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.repo.FeaturedProducts(gctx, t.ID, limit)
		if err != nil {
			s.log.ErrorContext(gctx, "featured products query failed, serving empty list",
				logger.TenantID(t.ID), logger.Error(err))
			return nil
		}
		if list != nil {
			f.Products = list
		}
		return nil
	})
	if t.Bookable() {
		g.Go(func() error {
			list, err := s.repo.FeaturedServices(gctx, t.ID, limit)
			if err != nil {
				s.log.ErrorContext(gctx, "featured services query failed, serving empty list",
					logger.TenantID(t.ID), logger.Error(err))
				return nil
			}
			if list != nil {
				f.Services = list
			}
			return nil
		})
	}
	_ = g.Wait()

	return f, nil
}

// InvalidateCache removes the tenant's aggregate from both cache tiers.
// Idempotent; the order of tier deletion is not significant because both
// deletes are idempotent and best-effort.
func (s *Service) InvalidateCache(ctx context.Context, slug string) {
	key := withDataKey(slug)
	s.local.Delete(key)
	s.remote.Delete(ctx, key)
}

// recordLastSeen notes when the tenant's storefront was last read. The
// write is detached from the request: it must never delay or fail the
// response, so it runs in its own goroutine with its own deadline, carrying
// the request's values but not its cancellation.
func (s *Service) recordLastSeen(ctx context.Context, slug string) {
	if s.remote == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, lastSeenTimeout)
		defer cancel()

		err := s.remote.Set(ctx, lastSeenKey(slug), time.Now().UTC().Format(time.RFC3339), lastSeenTTL)
		if err != nil {
			s.log.WarnContext(ctx, "last-seen update failed",
				logger.TenantSlug(slug), logger.Error(err))
		}
	}()
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sass-store/storekit/modules/storefront"
	"github.com/sass-store/storekit/pkg/cache"
	"github.com/sass-store/storekit/pkg/config"
	"github.com/sass-store/storekit/pkg/environment"
	"github.com/sass-store/storekit/pkg/httpserver"
	"github.com/sass-store/storekit/pkg/logger"
	"github.com/sass-store/storekit/pkg/pg"
	"github.com/sass-store/storekit/pkg/redis"
	"github.com/sass-store/storekit/pkg/tenant"
	"github.com/sass-store/storekit/svc/catalog"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"storefront"`
	// BaseDomain enables subdomain tenant resolution, e.g. "sass-store.com"
	// makes acme.sass-store.com serve the "acme" storefront.
	BaseDomain string `env:"APP_BASE_DOMAIN"`

	LocalCacheTTL  time.Duration `env:"TENANT_CACHE_TTL" envDefault:"15m"`
	LocalCacheSize int           `env:"TENANT_CACHE_MAX_SIZE" envDefault:"100"`
	RemoteCacheTTL time.Duration `env:"TENANT_REMOTE_CACHE_TTL" envDefault:"600s"`

	SkipMigrations bool `env:"SKIP_MIGRATIONS" envDefault:"false"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg   appConfig
		pgCfg    pg.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)

	env := environment.Parse(appCfg.Environment)
	log := logger.New(
		logger.WithEnvironment(env, appCfg.ServiceName),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	)
	logger.SetAsDefault(log)
	ctx = environment.WithContext(ctx, env)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()

	if !appCfg.SkipMigrations {
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	rdb, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close() //nolint:errcheck

	svc := catalog.NewService(
		catalog.NewPgRepository(pool),
		catalog.WithLocalCache(cache.NewLocal[*tenant.Data](
			cache.WithTTL(appCfg.LocalCacheTTL),
			cache.WithMaxSize(appCfg.LocalCacheSize),
		)),
		catalog.WithRemoteCache(cache.NewRemote(rdb, cache.WithLogger(log))),
		catalog.WithRemoteTTL(appCfg.RemoteCacheTTL),
		catalog.WithLogger(log),
	)

	resolver := tenant.NewCompositeResolver(
		tenant.NewSubdomainResolver(appCfg.BaseDomain),
		tenant.NewHeaderResolver(""),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(tenant.Middleware(resolver, svc,
		tenant.WithLogger(log),
		tenant.WithSkipPaths("/health"),
	))
	r.Get("/health", storefront.HealthHandler(map[string]storefront.Healthcheck{
		"postgres": pg.Healthcheck(pool),
		"redis":    redis.Healthcheck(rdb),
	}))
	r.Mount("/", storefront.Router(svc, storefront.WithLogger(log)))

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

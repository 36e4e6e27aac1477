package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-vendcms/internal/adapters"
	"github.com/goliatone/go-vendcms/internal/businessgoals"
	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/contentful"
	"github.com/goliatone/go-vendcms/internal/deprecation"
	"github.com/goliatone/go-vendcms/internal/links"
	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/internal/logging/console"
	"github.com/goliatone/go-vendcms/internal/logging/gologger"
	"github.com/goliatone/go-vendcms/internal/logging/zaplogger"
	"github.com/goliatone/go-vendcms/internal/machines"
	"github.com/goliatone/go-vendcms/internal/migration"
	"github.com/goliatone/go-vendcms/internal/products"
	"github.com/goliatone/go-vendcms/internal/runtimeconfig"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/internal/storage"
	"github.com/goliatone/go-vendcms/internal/technologies"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

const storageOpenTimeout = 10 * time.Second

// Container wires repositories, read services, the deprecation layer and
// sync jobs from a runtimeconfig.Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	closers        []func() error

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	httpClient *http.Client
	contentful *contentful.Client

	redisClient      redis.UniversalClient
	deprecationStore deprecation.Store
	notifier         interfaces.Notifier
	clock            func() time.Time

	links *links.Builder

	machineRepo    catalog.Repository[*machines.Machine]
	productRepo    catalog.Repository[*products.ProductType]
	technologyRepo catalog.Repository[*technologies.Technology]

	machineSvc    *machines.Service
	productSvc    *products.Service
	technologySvc *technologies.Service
	goalSvc       *businessgoals.Service

	registry *deprecation.Registry
	gate     *deprecation.Gate
	syncJobs []migration.Job
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithHTTPClient sets the client used for Contentful requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// WithRedisClient supplies the client for the redis deprecation store.
func WithRedisClient(client redis.UniversalClient) Option {
	return func(c *Container) {
		c.redisClient = client
	}
}

// WithDeprecationStore overrides the store selected from Config.Deprecation.
func WithDeprecationStore(store deprecation.Store) Option {
	return func(c *Container) {
		c.deprecationStore = store
	}
}

// WithNotifier sets where blocked write notifications go.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(c *Container) {
		c.notifier = notifier
	}
}

// WithClock sets the clock used for deprecation timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.clock = now
	}
}

// Seed repositories used with the memory storage provider.
func WithMachineRepository(repo catalog.Repository[*machines.Machine]) Option {
	return func(c *Container) { c.machineRepo = repo }
}

func WithProductTypeRepository(repo catalog.Repository[*products.ProductType]) Option {
	return func(c *Container) { c.productRepo = repo }
}

func WithTechnologyRepository(repo catalog.Repository[*technologies.Technology]) Option {
	return func(c *Container) { c.technologyRepo = repo }
}

// NewContainer validates cfg and builds every service. Resources opened here
// are released by Close.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	c := &Container{Config: cfg, cacheTTL: cacheTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func() error{
		c.configureLoggerProvider,
		c.configureStorage,
		c.configureCacheDefaults,
		c.configureContentful,
		c.configureRepositories,
		c.configureLinks,
		c.configureServices,
		c.configureDeprecation,
		c.configureSync,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	c.logger(logging.RootModule).Info("container.configured",
		"storage", c.Config.Storage.Provider,
		"cache", c.cacheService != nil,
		"deprecation_store", c.Config.Deprecation.Store,
		"sync_jobs", len(c.syncJobs),
	)
	return c, nil
}

func (c *Container) logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{Level: cfg.Level, Format: cfg.Format})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "zap":
		provider, err := zaplogger.NewProvider(zaplogger.Config{Level: cfg.Level})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
		c.closers = append(c.closers, func() error {
			_ = provider.Sync()
			return nil
		})
	default:
		level := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{Writer: os.Stderr, MinLevel: &level})
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || !strings.EqualFold(c.Config.Storage.Provider, runtimeconfig.ProviderBun) {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageOpenTimeout)
	defer cancel()
	db, err := storage.Open(ctx, c.Config.Storage)
	if err != nil {
		return err
	}
	c.bunDB = db
	c.closers = append(c.closers, db.Close)
	if c.Config.Storage.AutoMigrate {
		if err := storage.CreateSchema(ctx, db); err != nil {
			return fmt.Errorf("di: create schema: %w", err)
		}
	}
	return nil
}

func (c *Container) configureCacheDefaults() error {
	if !c.Config.Cache.Enabled {
		return nil
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.cacheTTL
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return fmt.Errorf("di: cache: %w", err)
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureContentful() error {
	provider := strings.ToLower(c.Config.Storage.Provider)
	if provider != runtimeconfig.ProviderContentful && !c.Config.Features.Migration {
		return nil
	}
	opts := []contentful.ClientOption{contentful.WithLogger(c.logger(logging.ContentfulModule))}
	if c.httpClient != nil {
		opts = append(opts, contentful.WithHTTPClient(c.httpClient))
	}
	c.contentful = contentful.NewClient(c.Config.Contentful, opts...)
	return nil
}

func (c *Container) configureRepositories() error {
	types := c.Config.Contentful.ContentTypes
	switch {
	case c.bunDB != nil:
		c.machineRepo = machines.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.productRepo = products.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.technologyRepo = technologies.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	case strings.EqualFold(c.Config.Storage.Provider, runtimeconfig.ProviderContentful):
		logger := c.logger(logging.ContentfulModule)
		c.machineRepo = contentful.NewRepository(c.contentful, types.Machine, contentful.MapMachine, logger)
		c.productRepo = contentful.NewRepository(c.contentful, types.ProductType, contentful.MapProductType, logger)
		c.technologyRepo = contentful.NewRepository(c.contentful, types.Technology, contentful.MapTechnology, logger)
	}
	if c.machineRepo == nil {
		c.machineRepo = machines.NewMemoryRepository()
	}
	if c.productRepo == nil {
		c.productRepo = products.NewMemoryRepository()
	}
	if c.technologyRepo == nil {
		c.technologyRepo = technologies.NewMemoryRepository()
	}
	return nil
}

func (c *Container) configureLinks() error {
	if !c.Config.Features.Links {
		return nil
	}
	builder, err := links.New(c.Config.Links, c.logger(logging.RootModule))
	if err != nil {
		return fmt.Errorf("di: links: %w", err)
	}
	c.links = builder
	return nil
}

func (c *Container) urlFor(entity string) func(string) string {
	if c.links == nil {
		return nil
	}
	return c.links.For(entity)
}

func (c *Container) resolverOptions() []slugs.Option {
	opts := []slugs.Option{slugs.WithDiagnosticLimit(c.Config.Slugs.DiagnosticLimit)}
	if len(c.Config.Slugs.Suffixes) > 0 {
		opts = append(opts, slugs.WithSuffixes(c.Config.Slugs.Suffixes...))
	}
	return opts
}

func (c *Container) configureServices() error {
	logger := c.logger(logging.SlugsModule)
	resolver := c.resolverOptions()

	c.machineSvc = machines.NewService(c.machineRepo,
		machines.WithLogger(logger),
		machines.WithResolverOptions(resolver...),
		machines.WithURL(c.urlFor(machines.Entity)),
	)
	c.productSvc = products.NewService(c.productRepo,
		products.WithLogger(logger),
		products.WithResolverOptions(resolver...),
		products.WithURL(c.urlFor(products.Entity)),
	)
	c.technologySvc = technologies.NewService(c.technologyRepo,
		technologies.WithLogger(logger),
		technologies.WithResolverOptions(resolver...),
		technologies.WithURL(c.urlFor(technologies.Entity)),
	)
	goals, err := businessgoals.NewDefaultService(
		businessgoals.WithLogger(logger),
		businessgoals.WithResolverOptions(resolver...),
		businessgoals.WithURL(c.urlFor(businessgoals.Entity)),
	)
	if err != nil {
		return fmt.Errorf("di: business goals: %w", err)
	}
	c.goalSvc = goals
	return nil
}

func (c *Container) configureDeprecation() error {
	cfg := c.Config.Deprecation
	if c.deprecationStore == nil && strings.EqualFold(cfg.Store, runtimeconfig.StoreRedis) {
		if c.redisClient == nil {
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			c.redisClient = client
			c.closers = append(c.closers, client.Close)
		}
		c.deprecationStore = deprecation.NewRedisStore(c.redisClient, cfg.Redis.KeyPrefix)
	}

	registryOpts := []deprecation.RegistryOption{}
	if c.deprecationStore != nil {
		registryOpts = append(registryOpts, deprecation.WithStore(c.deprecationStore))
	}
	if c.clock != nil {
		registryOpts = append(registryOpts, deprecation.WithClock(c.clock))
	}
	c.registry = deprecation.NewRegistry(registryOpts...)

	logger := logging.DeprecationLogger(c.loggerProvider)
	notifier := c.notifier
	if notifier == nil {
		if cfg.NotifyUsers {
			notifier = deprecation.NewLogNotifier(logger)
		} else {
			notifier = deprecation.NoOpNotifier{}
		}
	}
	c.gate = deprecation.NewGate(c.registry, notifier, logger)
	c.gate.CMSName = cfg.CMSName
	return nil
}

func (c *Container) configureSync() error {
	if !c.Config.Features.Migration || c.bunDB == nil || c.contentful == nil {
		return nil
	}
	types := c.Config.Contentful.ContentTypes
	cfLogger := c.logger(logging.ContentfulModule)
	logger := c.logger(logging.MigrationModule)

	c.syncJobs = []migration.Job{
		migration.NewSyncer(migration.Binding[*machines.Machine]{
			Entity:      machines.Entity,
			ContentType: types.Machine,
			Remote:      contentful.NewRepository(c.contentful, types.Machine, contentful.MapMachine, cfLogger),
			Local:       machines.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer),
			Fields:      contentful.MachineFields,
		}, c.contentful, logger),
		migration.NewSyncer(migration.Binding[*products.ProductType]{
			Entity:      products.Entity,
			ContentType: types.ProductType,
			Remote:      contentful.NewRepository(c.contentful, types.ProductType, contentful.MapProductType, cfLogger),
			Local:       products.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer),
			Fields:      contentful.ProductTypeFields,
		}, c.contentful, logger),
		migration.NewSyncer(migration.Binding[*technologies.Technology]{
			Entity:      technologies.Entity,
			ContentType: types.Technology,
			Remote:      contentful.NewRepository(c.contentful, types.Technology, contentful.MapTechnology, cfLogger),
			Local:       technologies.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer),
			Fields:      contentful.TechnologyFields,
		}, c.contentful, logger),
	}
	return nil
}

// Close releases resources the container opened, in reverse order.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// BunDB returns the database handle, or nil for non-bun providers.
func (c *Container) BunDB() *bun.DB { return c.bunDB }

func (c *Container) MachineService() *machines.Service { return c.machineSvc }

func (c *Container) ProductTypeService() *products.Service { return c.productSvc }

func (c *Container) TechnologyService() *technologies.Service { return c.technologySvc }

func (c *Container) BusinessGoalService() *businessgoals.Service { return c.goalSvc }

func (c *Container) DeprecationRegistry() *deprecation.Registry { return c.registry }

func (c *Container) DeprecationGate() *deprecation.Gate { return c.gate }

// SyncJobs is empty unless the migration feature is enabled.
func (c *Container) SyncJobs() []migration.Job { return c.syncJobs }

// MachineAdapter exposes machines through the read-only legacy adapter.
func (c *Container) MachineAdapter() adapters.ContentAdapter[machines.MachineView] {
	return readOnlyAdapter[machines.MachineView](c, machines.Entity, c.machineSvc)
}

func (c *Container) ProductTypeAdapter() adapters.ContentAdapter[products.ProductTypeView] {
	return readOnlyAdapter[products.ProductTypeView](c, products.Entity, c.productSvc)
}

func (c *Container) TechnologyAdapter() adapters.ContentAdapter[technologies.TechnologyView] {
	return readOnlyAdapter[technologies.TechnologyView](c, technologies.Entity, c.technologySvc)
}

func readOnlyAdapter[T any](c *Container, entity string, source any) adapters.ContentAdapter[T] {
	return adapters.WithLogging(
		adapters.ReadOnly[T](entity, source, c.gate),
		entity,
		c.logger(logging.AdaptersModule),
	)
}

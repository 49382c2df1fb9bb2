package bootstrap

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/assetbay/assetbay/common/config"
	"github.com/assetbay/assetbay/common/db"
	"github.com/assetbay/assetbay/common/db/migrations"
	"github.com/assetbay/assetbay/common/logger"
	"github.com/assetbay/assetbay/common/objstore"
	"github.com/assetbay/assetbay/common/redis"
)

// Setup initializes all service components
// This is the main entry point for all services
func Setup(ctx context.Context, serviceName string, opts ...Option) (*Components, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	components := &Components{
		cleanupFuncs: make([]func() error, 0),
	}

	// 1. Load configuration
	var err error
	if options.customConfig != nil {
		components.Config = options.customConfig
	} else {
		components.Config, err = config.Load(serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// 2. Initialize logger
	if options.customLogger != nil {
		components.Logger = options.customLogger
	} else {
		components.Logger = logger.New(
			components.Config.Service.LogLevel,
			components.Config.Service.LogFormat,
		)
	}

	components.Logger.Info("initializing service",
		"service", serviceName,
		"environment", components.Config.Service.Environment,
	)

	// 3. Initialize database (if not skipped)
	if !options.skipDB {
		if err := components.Config.ValidateDatabase(); err != nil {
			return nil, fmt.Errorf("database config: %w", err)
		}

		if !options.skipMigrations {
			components.Logger.Info("applying schema migrations")
			if err := migrations.Up(components.Config.DatabaseURL()); err != nil {
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}

		components.Logger.Info("connecting to database")
		components.DB, err = db.New(ctx, components.Config, components.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		components.addCleanup(func() error {
			components.DB.Close()
			return nil
		})

		if options.dbInitHook != nil {
			components.Logger.Info("running database init hook")
			if err := options.dbInitHook(components.DB); err != nil {
				components.Shutdown(ctx)
				return nil, fmt.Errorf("database init hook failed: %w", err)
			}
		}
	}

	// 4. Initialize secondary index (if not skipped)
	if !options.skipRedis {
		if err := components.Config.ValidateRedis(); err != nil {
			return nil, fmt.Errorf("redis config: %w", err)
		}

		components.Logger.Info("connecting to secondary index", "addr", components.Config.Redis.Addr)

		rdb := goredis.NewClient(&goredis.Options{
			Addr:     components.Config.Redis.Addr,
			Password: components.Config.Redis.Password,
			DB:       components.Config.Redis.DB,
		})
		components.Redis = redis.NewClient(rdb, components.Logger)

		if err := components.Redis.Ping(ctx); err != nil {
			components.Shutdown(ctx)
			return nil, fmt.Errorf("failed to connect to secondary index: %w", err)
		}

		components.addCleanup(func() error {
			components.Logger.Info("closing secondary index connection")
			return rdb.Close()
		})
	}

	// 5. Initialize object store (if not skipped)
	if !options.skipObjectStore {
		if err := components.Config.ValidateObjectStore(); err != nil {
			return nil, fmt.Errorf("object store config: %w", err)
		}

		components.Logger.Info("connecting to object store")
		components.ObjectStore, err = objstore.New(components.Config, components.Logger)
		if err != nil {
			components.Shutdown(ctx)
			return nil, fmt.Errorf("failed to connect to object store: %w", err)
		}
	}

	components.Logger.Info("service initialization complete",
		"service", serviceName,
		"db", components.DB != nil,
		"redis", components.Redis != nil,
		"object_store", components.ObjectStore != nil,
	)

	return components, nil
}

// MustSetup is like Setup but panics on error
// Useful for services that can't recover from initialization failure
func MustSetup(ctx context.Context, serviceName string, opts ...Option) *Components {
	components, err := Setup(ctx, serviceName, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to setup service %s: %v", serviceName, err))
	}
	return components
}

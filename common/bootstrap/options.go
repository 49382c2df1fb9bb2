package bootstrap

import (
	"github.com/assetbay/assetbay/common/config"
	"github.com/assetbay/assetbay/common/db"
	"github.com/assetbay/assetbay/common/logger"
)

// Option configures the bootstrap process
type Option func(*options)

type options struct {
	skipDB          bool
	skipRedis       bool
	skipObjectStore bool
	skipMigrations  bool
	customLogger    *logger.Logger
	customConfig    *config.Config
	dbInitHook      func(*db.DB) error
}

// WithoutDB skips database initialization
func WithoutDB() Option {
	return func(o *options) {
		o.skipDB = true
	}
}

// WithoutRedis skips secondary index initialization
func WithoutRedis() Option {
	return func(o *options) {
		o.skipRedis = true
	}
}

// WithoutObjectStore skips object store initialization
func WithoutObjectStore() Option {
	return func(o *options) {
		o.skipObjectStore = true
	}
}

// WithoutMigrations skips the schema migration run on startup
func WithoutMigrations() Option {
	return func(o *options) {
		o.skipMigrations = true
	}
}

// WithCustomLogger uses a custom logger instead of creating one
func WithCustomLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.customLogger = log
	}
}

// WithCustomConfig uses a custom config instead of loading from env
func WithCustomConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.customConfig = cfg
	}
}

// WithDBInitHook runs a custom function after DB initialization
// Useful for seeding data in development setups.
func WithDBInitHook(hook func(*db.DB) error) Option {
	return func(o *options) {
		o.dbInitHook = hook
	}
}

func defaultOptions() *options {
	return &options{}
}

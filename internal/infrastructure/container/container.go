// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	pantryapp "github.com/pantrywise/v1/internal/application/pantry"
	recipeapp "github.com/pantrywise/v1/internal/application/recipe"
	shoppingapp "github.com/pantrywise/v1/internal/application/shopping"
	suggestapp "github.com/pantrywise/v1/internal/application/suggest"
	userapp "github.com/pantrywise/v1/internal/application/user"
	"github.com/pantrywise/v1/internal/infrastructure/ai/gemini"
	"github.com/pantrywise/v1/internal/infrastructure/config"
	"github.com/pantrywise/v1/internal/infrastructure/http/middleware"
	"github.com/pantrywise/v1/internal/infrastructure/http/server"
	gormrepo "github.com/pantrywise/v1/internal/infrastructure/persistence/gorm"
	"github.com/pantrywise/v1/internal/infrastructure/persistence/postgres"
	redisrepo "github.com/pantrywise/v1/internal/infrastructure/persistence/redis"
	"github.com/pantrywise/v1/internal/infrastructure/security"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the postgres connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		return postgres.Connect(cfg, log)
	},
)

// CacheModule provides the cache repository, degrading to a noop cache
// when Redis is disabled or unreachable.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if !cfg.Redis.Enabled {
			log.Info("Redis disabled, using noop cache")
			return redisrepo.NoopCache{}
		}
		client, err := redisrepo.NewClient(cfg, log)
		if err != nil {
			log.Warn("Redis unavailable, using noop cache", zap.Error(err))
			return redisrepo.NoopCache{}
		}
		return redisrepo.NewCacheRepository(client, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewPantryRepository,
	gormrepo.NewRecipeRepository,
	gormrepo.NewFavouriteRepository,
	gormrepo.NewShoppingRepository,
	gormrepo.NewUserRepository,
	gormrepo.NewConversionRepository,
	security.NewTokenService,
	gemini.NewService,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	userapp.NewAuthService,
	pantryapp.NewService,
	recipeapp.NewService,
	shoppingapp.NewService,
	suggestapp.NewService,
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	middleware.New,
	server.NewServer,
)

// LifecycleModule wires startup and shutdown hooks
var LifecycleModule = fx.Invoke(RegisterLifecycleHooks)

// RegisterLifecycleHooks starts the HTTP server and releases resources
// on shutdown.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	srv *server.Server,
	db *gorm.DB,
	log *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				log.Error("HTTP server shutdown failed", zap.Error(err))
			}
			if err := postgres.Close(db); err != nil {
				log.Error("Database close failed", zap.Error(err))
			}
			_ = log.Sync()
			return nil
		},
	})
}

// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrywise/v1/internal/infrastructure/config"
	gormmodels "github.com/pantrywise/v1/internal/infrastructure/persistence/gorm"
)

// Connect opens a pooled gorm connection and, when configured, runs
// the schema migration and conversion table seed.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.App.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.New(
			zapWriter{log.Named("gorm")},
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logLevel,
				IgnoreRecordNotFoundError: true,
			},
		),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(gormmodels.AllModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		if err := gormmodels.SeedDefaultConversions(db); err != nil {
			return nil, fmt.Errorf("failed to seed conversion table: %w", err)
		}
	}

	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
		zap.Bool("auto_migrate", cfg.Database.AutoMigrate),
	)
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// zapWriter adapts zap to gorm's logger.Writer.
type zapWriter struct {
	log *zap.Logger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.log.Sugar().Debugf(format, args...)
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"workshop-service/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresOptions sizes the connection pool
type PostgresOptions struct {
	MaxOpenConns   int
	MinIdleConns   int
	AcquireTimeout time.Duration
}

// NewPostgresDB opens a pooled gorm connection and checks it answers
func NewPostgresDB(ctx context.Context, dsn string, opts PostgresOptions, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MinIdleConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Ping to check connection
	pingCtx, cancel := withOptionalTimeout(ctx, opts.AcquireTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	log.Info("Connected to PostgreSQL", "maxOpenConns", opts.MaxOpenConns, "minIdleConns", opts.MinIdleConns)
	return db, nil
}

// NewGormLogger sends gorm's warnings and slow queries to log.
// Missing rows are an expected lookup result and are not logged.
func NewGormLogger(log logger.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{log: log}, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}

// withOptionalTimeout bounds ctx by d; d <= 0 leaves it unbounded
func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// ClosePostgresDB releases the pool
func ClosePostgresDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

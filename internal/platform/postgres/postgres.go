package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a PostgreSQL connection via GORM, applies pool limits, and
// verifies connectivity with a bounded ping.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Dial connects using the provided DSN and returns the DB plus a cleanup
// function. An empty DSN or a failed connection logs a warning and returns
// nil so callers can fall back to in-memory repositories.
func Dial(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if strings.TrimSpace(dsn) == "" {
		warn(logger, "POSTGRES_DSN not set, falling back to in-memory repositories", nil)
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		warn(logger, "failed to connect to postgres, falling back to in-memory repositories", err)
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		warn(logger, "failed to unwrap postgres connection, falling back to in-memory repositories", err)
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("postgres connection established")
	}
	return db, func() { _ = sqlDB.Close() }
}

func warn(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn(msg, slog.String("error", err.Error()))
		return
	}
	logger.Warn(msg)
}

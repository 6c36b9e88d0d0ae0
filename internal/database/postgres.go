package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/matheusmosca/techstore/internal/config"
	"go.uber.org/zap"
)

const connectAttempts = 30

// NewPool abre o pool pgx e espera o banco ficar disponível
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := waitReady(ctx, pool.Ping, cfg.Name, logger); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Open abre uma conexão database/sql via lib/pq, usada pelas ferramentas de migração
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := waitReady(ctx, db.PingContext, cfg.Name, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func waitReady(ctx context.Context, ping func(context.Context) error, name string, logger *zap.Logger) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for i := 1; i <= connectAttempts; i++ {
		if err := ping(ctx); err == nil {
			logger.Info("✅ connected to database", zap.String("database", name))
			return nil
		}
		logger.Info("⏳ waiting for database...", zap.Int("attempt", i), zap.Int("of", connectAttempts))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return fmt.Errorf("failed to connect to database after %d attempts", connectAttempts)
}

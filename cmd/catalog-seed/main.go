package main

import (
	"context"
	"log"
	"time"

	"github.com/matheusmosca/techstore/internal/config"
	"github.com/matheusmosca/techstore/internal/database"
	"github.com/matheusmosca/techstore/internal/storefront"
	"github.com/matheusmosca/techstore/internal/telemetry"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("catalog-seed", "")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := telemetry.NewLogger(cfg.ServiceName, cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	products := storefront.DefaultCatalog()
	if err := database.SeedCatalog(ctx, db, products); err != nil {
		logger.Fatal("failed to seed catalog", zap.Error(err))
	}
	logger.Info("✅ catalog seeded", zap.Int("products", len(products)), zap.String("database", cfg.Database.Name))
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/matheusmosca/techstore/internal/config"
	"github.com/matheusmosca/techstore/internal/delivery"
	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/notice"
	"github.com/matheusmosca/techstore/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("delivery-service", "8081")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := telemetry.NewLogger(cfg.ServiceName, cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Init(ctx, cfg.ServiceName, cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		logger.Fatal("failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("error shutting down telemetry", zap.Error(err))
		}
	}()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	useCase := delivery.NewDeliveryUseCase(
		delivery.NewInMemoryRepository(),
		delivery.NewSimulatedProcessor(cfg.DeliveryProcessingDelay, handoff.NewSequentialTrackingNumbers()),
		notice.Fanout{notice.NewLogNotifier(logger), notice.NewMeterNotifier(otel.Meter(cfg.ServiceName))},
		logger,
		cfg.StorefrontURL,
	)
	handler := delivery.NewDeliveryHandler(useCase, otel.Tracer(cfg.ServiceName))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      delivery.NewRouter(handler, cfg.ServiceName, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		logger.Info("🚀 Delivery Service listening",
			zap.String("port", cfg.Port),
			zap.String("storefront", cfg.StorefrontURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down", zap.Int("pending_payments", useCase.Pending()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down server", zap.Error(err))
	}
	if err := useCase.Shutdown(shutdownCtx); err != nil {
		logger.Error("error stopping payment processing", zap.Error(err))
	}
}

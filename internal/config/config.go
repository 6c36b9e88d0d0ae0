package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	CatalogSourceMemory   = "memory"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	LogLevel    string

	OTelEnabled  bool
	OTelEndpoint string

	StorefrontURL      string
	DeliveryServiceURL string

	CheckoutRedirectDelay   time.Duration
	DeliveryProcessingDelay time.Duration

	CatalogSource string
	Database      DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN no formato URL aceito pelo pgx e pelo lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load lê a configuração do ambiente. service e defaultPort variam por binário.
func Load(service, defaultPort string) (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", defaultPort),
		ServiceName:        getEnv("SERVICE_NAME", service),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		OTelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		StorefrontURL:      getEnv("STOREFRONT_URL", "http://localhost:8080"),
		DeliveryServiceURL: getEnv("DELIVERY_SERVICE_URL", "http://localhost:8081"),
		CatalogSource:      getEnv("CATALOG_SOURCE", CatalogSourceMemory),
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "root"),
			Password: getEnv("DATABASE_PASSWORD", "pass"),
			Name:     getEnv("DATABASE_NAME", "techstore_db"),
		},
	}

	var err error
	if cfg.OTelEnabled, err = strconv.ParseBool(getEnv("OTEL_ENABLED", "true")); err != nil {
		return nil, fmt.Errorf("invalid OTEL_ENABLED: %w", err)
	}
	if cfg.CheckoutRedirectDelay, err = time.ParseDuration(getEnv("CHECKOUT_REDIRECT_DELAY", "1500ms")); err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_REDIRECT_DELAY: %w", err)
	}
	if cfg.DeliveryProcessingDelay, err = time.ParseDuration(getEnv("DELIVERY_PROCESSING_DELAY", "2s")); err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_PROCESSING_DELAY: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.CheckoutRedirectDelay < 0 {
		return fmt.Errorf("CHECKOUT_REDIRECT_DELAY must not be negative")
	}
	if c.DeliveryProcessingDelay < 0 {
		return fmt.Errorf("DELIVERY_PROCESSING_DELAY must not be negative")
	}
	switch c.CatalogSource {
	case CatalogSourceMemory, CatalogSourcePostgres:
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

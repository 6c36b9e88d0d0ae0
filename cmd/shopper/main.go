package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matheusmosca/techstore/internal/shopper"
	"github.com/matheusmosca/techstore/internal/telemetry"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	var (
		storefrontURL = flag.String("storefront", envOr("STOREFRONT_URL", "http://localhost:8080"), "storefront base URL")
		products      = flag.StringSlice("product", []string{"1"}, "product id to add (repeatable)")
		name          = flag.String("name", "Ana Souza", "customer name")
		email         = flag.String("email", "ana@example.com", "customer email")
		phone         = flag.String("phone", "+1 555 0100", "customer phone")
		method        = flag.String("payment", "card", "payment method: card, upi or paypal")
		street        = flag.String("street", "123 Main Street", "delivery street")
		city          = flag.String("city", "New York", "delivery city")
		state         = flag.String("state", "NY", "delivery state")
		postal        = flag.String("postal-code", "10001", "delivery postal code")
		poll          = flag.Duration("poll", 250*time.Millisecond, "delivery status poll interval")
		timeout       = flag.Duration("timeout", 30*time.Second, "give up after this long")
		verbose       = flag.BoolP("verbose", "v", false, "log every request")
	)
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger, err := telemetry.NewLogger("shopper", level, true)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client := shopper.NewClient(*storefrontURL, logger)
	receipt, err := client.Walk(ctx, shopper.Order{
		ProductIDs: *products,
		Customer: shopper.Customer{
			Name:          *name,
			Email:         *email,
			Phone:         *phone,
			PaymentMethod: *method,
		},
		Address: shopper.Address{
			Street:     *street,
			City:       *city,
			State:      *state,
			PostalCode: *postal,
		},
		PollInterval: *poll,
	})
	if err != nil {
		logger.Fatal("❌ checkout failed", zap.Error(err))
	}

	fmt.Printf("order:    %s\n", receipt.OrderID)
	fmt.Printf("subtotal: $%s\n", receipt.Quote.Subtotal)
	fmt.Printf("shipping: $%s\n", receipt.Quote.Shipping)
	fmt.Printf("tax:      $%s\n", receipt.Quote.Tax)
	fmt.Printf("charged:  %s\n", receipt.Amount)
	fmt.Printf("tracking: %s\n", receipt.TrackingNumber)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

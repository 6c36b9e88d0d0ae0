package shopper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Order descreve uma compra completa feita pelo shopper
type Order struct {
	ProductIDs   []string
	Customer     Customer
	Address      Address
	PollInterval time.Duration
}

// Receipt é o que o shopper viu ao final do fluxo
type Receipt struct {
	OrderID        string
	Amount         string
	TrackingNumber string
	Quote          Quote
	Confirmation   Confirmation
}

// Walk percorre Catalog → Cart → Checkout → Delivery → Confirmation
func (c *Client) Walk(ctx context.Context, order Order) (*Receipt, error) {
	interval := order.PollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	for _, id := range order.ProductIDs {
		page, err := c.AddToCart(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := expect(page, http.StatusOK, "add "+id); err != nil {
			return nil, err
		}
	}

	checkout, err := c.Checkout(ctx)
	if err != nil {
		return nil, err
	}
	if err := expectScreen(checkout, http.StatusOK, "checkout", checkout.Quote != nil); err != nil {
		return nil, err
	}

	placed, err := c.PlaceOrder(ctx, order.Customer)
	if err != nil {
		return nil, err
	}
	if !placed.Redirected() {
		return nil, fmt.Errorf("%w: place order got %d %s", ErrUnexpectedStatus, placed.Status, placed.Error)
	}

	deliveryURL, err := DeliveryBase(placed.Location)
	if err != nil {
		return nil, err
	}

	screen, err := c.Visit(ctx, placed.Location)
	if err != nil {
		return nil, err
	}
	if err := expectScreen(screen, http.StatusOK, "delivery screen", screen.Delivery != nil); err != nil {
		return nil, err
	}
	orderID := screen.Delivery.OrderID
	c.logger.Info("🚚 on delivery screen",
		zap.String("order_id", orderID),
		zap.String("amount", screen.Delivery.Amount),
	)

	submitted, err := c.SubmitAddress(ctx, deliveryURL, orderID, order.Address)
	if err != nil {
		return nil, err
	}
	if err := expect(submitted, http.StatusAccepted, "submit address"); err != nil {
		return nil, err
	}

	final, err := c.WaitForPayment(ctx, deliveryURL, orderID, interval)
	if err != nil {
		return nil, err
	}
	if final.Delivery.State != "succeeded" {
		return nil, fmt.Errorf("payment for %s ended as %s: %s", orderID, final.Delivery.State, final.Delivery.FailureReason)
	}

	back, err := c.ReturnToStore(ctx, deliveryURL, orderID)
	if err != nil {
		return nil, err
	}
	if !back.Redirected() {
		return nil, fmt.Errorf("%w: return to store got %d", ErrUnexpectedStatus, back.Status)
	}

	confirmation, err := c.Visit(ctx, back.Location)
	if err != nil {
		return nil, err
	}
	if err := expectScreen(confirmation, http.StatusOK, "confirmation", confirmation.Confirmation != nil); err != nil {
		return nil, err
	}

	c.logger.Info("✅ order confirmed",
		zap.String("order_id", confirmation.Confirmation.OrderID),
		zap.String("tracking", confirmation.Confirmation.TrackingNumber),
	)
	return &Receipt{
		OrderID:        orderID,
		Amount:         screen.Delivery.Amount,
		TrackingNumber: confirmation.Confirmation.TrackingNumber,
		Quote:          *checkout.Quote,
		Confirmation:   *confirmation.Confirmation,
	}, nil
}

func expect(page *Page, status int, step string) error {
	if page.Status != status {
		return fmt.Errorf("%w: %s got %d, want %d %s", ErrUnexpectedStatus, step, page.Status, status, page.Error)
	}
	return nil
}

// expectScreen também exige que o corpo traga a tela pedida
func expectScreen(page *Page, status int, step string, rendered bool) error {
	if err := expect(page, status, step); err != nil {
		return err
	}
	if !rendered {
		return fmt.Errorf("%w: %s got %d without the expected screen", ErrUnexpectedStatus, step, page.Status)
	}
	return nil
}

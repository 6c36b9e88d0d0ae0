package storefront

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/notice"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CartAction é o resultado de uma ação da tela de produto
type CartAction struct {
	Product Product
	Cart    Cart
	Notice  *notice.Notice
}

// Placement é o resultado do submit do checkout. Notice vem preenchido também
// quando o pedido é recusado por validação.
type Placement struct {
	Handoff     handoff.OrderHandoff
	RedirectURL string
	Notice      *notice.Notice
}

// UseCaseConfig agrupa os parâmetros do storefront vindos da configuração
type UseCaseConfig struct {
	DeliveryServiceURL string
	RedirectDelay      time.Duration
}

// StorefrontUseCase contém a lógica das telas do storefront
type StorefrontUseCase struct {
	catalog  CatalogRepository
	cart     *CartStore
	orderIDs handoff.OrderIDGenerator
	notifier notice.Notifier
	logger   *zap.Logger
	tracer   trace.Tracer
	cfg      UseCaseConfig

	ordersInitiated metric.Int64Counter
	ordersConfirmed metric.Int64Counter
}

// NewStorefrontUseCase cria uma nova instância de StorefrontUseCase
func NewStorefrontUseCase(
	catalog CatalogRepository,
	cart *CartStore,
	orderIDs handoff.OrderIDGenerator,
	notifier notice.Notifier,
	logger *zap.Logger,
	cfg UseCaseConfig,
) *StorefrontUseCase {
	meter := otel.Meter("storefront")
	initiated, _ := meter.Int64Counter("orders.initiated", metric.WithDescription("Checkouts handed off to the delivery service"))
	confirmed, _ := meter.Int64Counter("orders.confirmed", metric.WithDescription("Orders that reached the confirmation screen"))

	return &StorefrontUseCase{
		catalog:         catalog,
		cart:            cart,
		orderIDs:        orderIDs,
		notifier:        notifier,
		logger:          logger,
		tracer:          otel.Tracer("storefront"),
		cfg:             cfg,
		ordersInitiated: initiated,
		ordersConfirmed: confirmed,
	}
}

func (uc *StorefrontUseCase) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (uc *StorefrontUseCase) GetProduct(ctx context.Context, id string) (Product, error) {
	return uc.catalog.GetProduct(ctx, id)
}

// AddToCart adiciona uma unidade do produto. Produto sem estoque é recusado aqui,
// não no Cart Store.
func (uc *StorefrontUseCase) AddToCart(ctx context.Context, productID string) (CartAction, error) {
	product, err := uc.catalog.GetProduct(ctx, productID)
	if err != nil {
		return CartAction{}, err
	}

	if !product.InStock() {
		n := noticeOutOfStock(product)
		uc.notifier.Notify(ctx, n)
		return CartAction{Product: product, Cart: uc.cart.View(), Notice: &n}, ErrOutOfStock
	}

	cart := uc.cart.Dispatch(ctx, AddToCart{Product: product})
	n := noticeAddedToCart(product)
	uc.notifier.Notify(ctx, n)
	return CartAction{Product: product, Cart: cart, Notice: &n}, nil
}

// BuyNow é o AddToCart seguido de navegação para o carrinho
func (uc *StorefrontUseCase) BuyNow(ctx context.Context, productID string) (CartAction, error) {
	return uc.AddToCart(ctx, productID)
}

func (uc *StorefrontUseCase) Cart(ctx context.Context) Cart {
	return uc.cart.View()
}

func (uc *StorefrontUseCase) UpdateQuantity(ctx context.Context, productID string, quantity int) Cart {
	return uc.cart.Dispatch(ctx, UpdateQuantity{ProductID: productID, Quantity: quantity})
}

func (uc *StorefrontUseCase) RemoveFromCart(ctx context.Context, productID string) Cart {
	return uc.cart.Dispatch(ctx, RemoveFromCart{ProductID: productID})
}

func (uc *StorefrontUseCase) ClearCart(ctx context.Context) Cart {
	return uc.cart.Dispatch(ctx, ClearCart{})
}

// Quote monta o resumo do checkout; ErrEmptyCart se não há o que cobrar
func (uc *StorefrontUseCase) Quote(ctx context.Context) (Quote, error) {
	cart := uc.cart.View()
	if cart.IsEmpty() {
		return Quote{}, ErrEmptyCart
	}
	return NewQuote(cart), nil
}

// PlaceOrder valida o formulário, gera o order_id e espera o atraso de
// redirecionamento antes de devolver a URL do serviço de entrega.
// Se ctx terminar durante a espera nenhuma navegação acontece.
func (uc *StorefrontUseCase) PlaceOrder(ctx context.Context, details CustomerDetails) (Placement, error) {
	ctx, span := uc.tracer.Start(ctx, "checkout.place_order")
	defer span.End()

	quote, err := uc.Quote(ctx)
	if err != nil {
		return Placement{}, err
	}

	if strings.TrimSpace(details.Name) == "" ||
		strings.TrimSpace(details.Email) == "" ||
		strings.TrimSpace(details.Phone) == "" {
		n := noticeMissingInformation()
		uc.notifier.Notify(ctx, n)
		return Placement{Notice: &n}, ErrMissingInformation
	}

	method, err := handoff.ParsePaymentMethod(details.PaymentMethod)
	if err != nil {
		n := noticeInvalidPaymentMethod()
		uc.notifier.Notify(ctx, n)
		return Placement{Notice: &n}, err
	}

	token := handoff.OrderHandoff{
		OrderID:       uc.orderIDs.NewOrderID(),
		Amount:        quote.Total,
		CustomerName:  strings.TrimSpace(details.Name),
		CustomerEmail: strings.TrimSpace(details.Email),
		PaymentMethod: method,
	}
	span.SetAttributes(
		attribute.String("order_id", token.OrderID),
		attribute.String("amount", token.Amount.StringFixed(2)),
		attribute.String("payment_method", string(method)),
	)

	n := noticeRedirecting()
	uc.notifier.Notify(ctx, n)
	uc.logger.Info("⏳ redirecting to delivery service",
		zap.String("order_id", token.OrderID),
		zap.String("amount", token.Amount.StringFixed(2)),
		zap.Duration("delay", uc.cfg.RedirectDelay),
	)

	if err := wait(ctx, uc.cfg.RedirectDelay); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "redirect abandoned")
		uc.logger.Warn("❌ checkout abandoned before redirect", zap.String("order_id", token.OrderID), zap.Error(err))
		return Placement{Handoff: token, Notice: &n}, fmt.Errorf("checkout %s abandoned: %w", token.OrderID, err)
	}

	if uc.ordersInitiated != nil {
		uc.ordersInitiated.Add(ctx, 1, metric.WithAttributes(attribute.String("payment_method", string(method))))
	}

	return Placement{
		Handoff:     token,
		RedirectURL: token.URL(uc.cfg.DeliveryServiceURL),
		Notice:      &n,
	}, nil
}

// ConfirmOrder é a chegada na tela de confirmação. O carrinho é limpo a cada
// chegada válida; repetir a chegada não muda nada.
func (uc *StorefrontUseCase) ConfirmOrder(ctx context.Context, query url.Values) (handoff.Confirmation, error) {
	confirmation, err := handoff.ParseConfirmation(query)
	if err != nil {
		return handoff.Confirmation{}, err
	}

	uc.cart.Dispatch(ctx, ClearCart{})
	if uc.ordersConfirmed != nil {
		uc.ordersConfirmed.Add(ctx, 1)
	}

	uc.logger.Info("✅ order confirmed",
		zap.String("order_id", confirmation.OrderID),
		zap.String("tracking", confirmation.TrackingNumber),
	)
	return confirmation, nil
}

// TrackOrder exibe o número de rastreio ao usuário
func (uc *StorefrontUseCase) TrackOrder(ctx context.Context, tracking string) (notice.Notice, error) {
	tracking = strings.TrimSpace(tracking)
	if tracking == "" {
		return notice.Notice{}, handoff.ErrMissingHandoff
	}
	n := noticeTrackOrder(tracking)
	uc.notifier.Notify(ctx, n)
	return n, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

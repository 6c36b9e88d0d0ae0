package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/notice"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DeliveryUseCase contém a lógica da tela de entrega. Nunca lê o carrinho:
// tudo que sabe do pedido veio no OrderHandoff.
type DeliveryUseCase struct {
	repository    Repository
	processor     PaymentProcessor
	notifier      notice.Notifier
	logger        *zap.Logger
	tracer        trace.Tracer
	storefrontURL string

	// base é cancelado no Shutdown; cada processamento deriva dele
	base     context.Context
	stop     context.CancelFunc
	mu       sync.Mutex
	stopped  bool
	pending  map[string]*run
	wg       sync.WaitGroup
	outcomes metric.Int64Counter
}

type run struct {
	cancel context.CancelFunc
}

// NewDeliveryUseCase cria uma nova instância de DeliveryUseCase
func NewDeliveryUseCase(
	repository Repository,
	processor PaymentProcessor,
	notifier notice.Notifier,
	logger *zap.Logger,
	storefrontURL string,
) *DeliveryUseCase {
	base, stop := context.WithCancel(context.Background())
	outcomes, _ := otel.Meter("delivery").Int64Counter(
		"delivery.payments",
		metric.WithDescription("Payment attempts by outcome"),
	)

	return &DeliveryUseCase{
		repository:    repository,
		processor:     processor,
		notifier:      notifier,
		logger:        logger,
		tracer:        otel.Tracer("delivery"),
		storefrontURL: storefrontURL,
		base:          base,
		stop:          stop,
		pending:       make(map[string]*run),
		outcomes:      outcomes,
	}
}

// Open monta a tela a partir do token da URL. Repetir a chegada devolve a sessão existente.
func (uc *DeliveryUseCase) Open(ctx context.Context, query url.Values) (Session, error) {
	order, err := handoff.ParseOrderHandoff(query)
	if err != nil {
		return Session{}, err
	}

	session, created, err := uc.repository.CreateIfAbsent(ctx, NewSession(order))
	if err != nil {
		return Session{}, fmt.Errorf("failed to open delivery session: %w", err)
	}
	if created {
		uc.logger.Info("🚚 delivery session opened",
			zap.String("order_id", order.OrderID),
			zap.String("amount", order.Amount.StringFixed(2)),
			zap.String("payment_method", string(order.PaymentMethod)),
		)
	}
	return *session, nil
}

// SubmitAddress valida o endereço e dispara o processamento em background.
// Notice vem preenchido quando o endereço está incompleto.
func (uc *DeliveryUseCase) SubmitAddress(ctx context.Context, orderID string, addr Address) (Session, *notice.Notice, error) {
	session, err := uc.repository.Update(ctx, orderID, func(s *Session) error {
		return s.StartProcessing(addr)
	})
	if errors.Is(err, ErrMissingAddress) {
		n := notice.Destructive("Missing Address Information", "Please fill in all required address fields.")
		uc.notifier.Notify(ctx, n)
		return session, &n, err
	}
	if err != nil {
		return session, nil, err
	}

	if err := uc.start(trace.SpanContextFromContext(ctx), session); err != nil {
		failed, ferr := uc.repository.Update(ctx, orderID, func(s *Session) error {
			return s.Fail(err.Error())
		})
		if ferr != nil {
			return session, nil, errors.Join(err, ferr)
		}
		return failed, failed.Notice, err
	}

	uc.logger.Info("⏳ processing payment",
		zap.String("order_id", orderID),
		zap.Int("attempt", session.Attempts),
	)
	return session, nil, nil
}

// start registra o processamento; depois do Shutdown nenhum novo é aceito
func (uc *DeliveryUseCase) start(parent trace.SpanContext, session Session) error {
	ctx, cancel := context.WithCancel(uc.base)
	r := &run{cancel: cancel}

	uc.mu.Lock()
	if uc.stopped {
		uc.mu.Unlock()
		cancel()
		return ErrShuttingDown
	}
	if prev, ok := uc.pending[session.Order.OrderID]; ok {
		prev.cancel()
	}
	uc.pending[session.Order.OrderID] = r
	uc.wg.Add(1)
	uc.mu.Unlock()

	go func() {
		defer uc.wg.Done()
		defer uc.finish(session.Order.OrderID, r)
		uc.process(trace.ContextWithSpanContext(ctx, parent), session)
	}()
	return nil
}

func (uc *DeliveryUseCase) finish(orderID string, r *run) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	r.cancel()
	if uc.pending[orderID] == r {
		delete(uc.pending, orderID)
	}
}

func (uc *DeliveryUseCase) process(ctx context.Context, session Session) {
	orderID := session.Order.OrderID
	ctx, span := uc.tracer.Start(ctx, "delivery.process", trace.WithAttributes(
		attribute.String("order_id", orderID),
		attribute.Int("attempt", session.Attempts),
	))
	defer span.End()

	tracking, procErr := uc.processor.Process(ctx, session.Order, session.Address)
	if ctx.Err() != nil {
		// tela desmontada ou serviço encerrando: nada é escrito
		uc.logger.Info("↩️ payment processing cancelled", zap.String("order_id", orderID))
		span.SetStatus(codes.Error, "cancelled")
		return
	}

	outcome, err := uc.repository.Update(ctx, orderID, func(s *Session) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if procErr != nil {
			return s.Fail(procErr.Error())
		}
		return s.Succeed(tracking)
	})
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("❌ could not record payment outcome", zap.String("order_id", orderID), zap.Error(err))
		return
	}

	if procErr != nil {
		span.RecordError(procErr)
		span.SetStatus(codes.Error, "payment failed")
		uc.count(ctx, "failed")
		uc.logger.Error("❌ payment failed", zap.String("order_id", orderID), zap.Error(procErr))
		uc.notifier.Notify(ctx, *outcome.Notice)
		return
	}

	span.SetAttributes(attribute.String("tracking", tracking))
	uc.count(ctx, "succeeded")
	uc.logger.Info("✅ payment successful",
		zap.String("order_id", orderID),
		zap.String("tracking", tracking),
	)
	uc.notifier.Notify(ctx, *outcome.Notice)
}

func (uc *DeliveryUseCase) count(ctx context.Context, outcome string) {
	if uc.outcomes != nil {
		uc.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func (uc *DeliveryUseCase) Status(ctx context.Context, orderID string) (Session, error) {
	return uc.repository.Get(ctx, orderID)
}

// ReturnToStore é o "Return to TechStore"; só vale depois do sucesso
func (uc *DeliveryUseCase) ReturnToStore(ctx context.Context, orderID string) (string, error) {
	session, err := uc.repository.Get(ctx, orderID)
	if err != nil {
		return "", err
	}

	confirmation, err := session.Confirmation()
	if err != nil {
		return "", err
	}
	return confirmation.URL(uc.storefrontURL), nil
}

// Abandon desmonta a tela: cancela o processamento pendente e descarta a sessão
func (uc *DeliveryUseCase) Abandon(ctx context.Context, orderID string) error {
	uc.mu.Lock()
	if r, ok := uc.pending[orderID]; ok {
		r.cancel()
		delete(uc.pending, orderID)
	}
	err := uc.repository.Delete(ctx, orderID)
	uc.mu.Unlock()

	if err != nil {
		return err
	}
	uc.logger.Info("↩️ delivery session discarded", zap.String("order_id", orderID))
	return nil
}

// Pending conta os processamentos ainda em andamento
func (uc *DeliveryUseCase) Pending() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.pending)
}

// StorefrontURL é a raiz da loja, destino quando falta o token
func (uc *DeliveryUseCase) StorefrontURL() string {
	return uc.storefrontURL
}

// Shutdown cancela todos os timers pendentes e espera as goroutines terminarem
func (uc *DeliveryUseCase) Shutdown(ctx context.Context) error {
	uc.mu.Lock()
	uc.stopped = true
	uc.mu.Unlock()
	uc.stop()

	done := make(chan struct{})
	go func() {
		uc.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for payment processing: %w", ctx.Err())
	}
}

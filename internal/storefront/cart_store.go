package storefront

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// CartStore é o provider do carrinho da sessão: Dispatch é a única porta de
// escrita e View devolve uma cópia. O mutex serializa as goroutines HTTP.
type CartStore struct {
	mu        sync.Mutex
	state     Cart
	logger    *zap.Logger
	mutations metric.Int64Counter
}

// NewCartStore cria um carrinho vazio
func NewCartStore(logger *zap.Logger) *CartStore {
	mutations, _ := otel.Meter("storefront").Int64Counter(
		"cart.mutations",
		metric.WithDescription("Cart intents applied"),
	)
	return &CartStore{
		state:     Cart{Items: []CartItem{}},
		logger:    logger,
		mutations: mutations,
	}
}

// Dispatch aplica o intent e devolve o novo estado
func (s *CartStore) Dispatch(ctx context.Context, intent Intent) Cart {
	s.mu.Lock()
	s.state = Reduce(s.state, intent)
	view := s.state.clone()
	s.mu.Unlock()

	if s.mutations != nil {
		s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("intent", intent.Name())))
	}
	s.logger.Debug("cart intent applied",
		zap.String("intent", intent.Name()),
		zap.Int("lines", len(view.Items)),
		zap.Int("item_count", view.ItemCount()),
		zap.String("total", view.Total.StringFixed(2)),
	)
	return view
}

// View devolve uma cópia do carrinho atual
func (s *CartStore) View() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (c Cart) clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items, Total: c.Total}
}

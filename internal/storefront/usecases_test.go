package storefront

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCatalogRepository simula o catálogo
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockCatalogRepository) GetProduct(ctx context.Context, id string) (Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Product), args.Error(1)
}

// MockNotifier registra os toasts emitidos
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n notice.Notice) {
	m.Called(ctx, n)
}

type fixedOrderIDs struct{ id string }

func (f fixedOrderIDs) NewOrderID() string { return f.id }

func newTestUseCase(repo CatalogRepository, notifier notice.Notifier, delay time.Duration) (*StorefrontUseCase, *CartStore) {
	store := NewCartStore(zap.NewNop())
	uc := NewStorefrontUseCase(repo, store, fixedOrderIDs{id: "ORD-1-1"}, notifier, zap.NewNop(), UseCaseConfig{
		DeliveryServiceURL: "http://delivery.test",
		RedirectDelay:      delay,
	})
	return uc, store
}

func validDetails() CustomerDetails {
	return CustomerDetails{Name: "Ana", Email: "ana@example.com", Phone: "555-0100", PaymentMethod: "card"}
}

func TestStorefrontUseCase_AddToCart(t *testing.T) {
	t.Run("adds product and raises notice", func(t *testing.T) {
		// Arrange
		repo := new(MockCatalogRepository)
		notifier := new(MockNotifier)
		p := product("1", "299.99")
		repo.On("GetProduct", mock.Anything, "1").Return(p, nil)
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notice.Notice) bool { return n.Title == "Added to cart" })).Once()
		uc, store := newTestUseCase(repo, notifier, 0)

		// Act
		action, err := uc.AddToCart(context.Background(), "1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, action.Cart.ItemCount())
		assert.Equal(t, "Product 1 has been added to your cart.", action.Notice.Description)
		assert.Equal(t, 1, store.View().ItemCount())
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("refuses out of stock product", func(t *testing.T) {
		// Arrange
		repo := new(MockCatalogRepository)
		notifier := new(MockNotifier)
		p := product("1", "299.99")
		p.Stock = 0
		repo.On("GetProduct", mock.Anything, "1").Return(p, nil)
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notice.Notice) bool { return n.Variant == notice.VariantDestructive })).Once()
		uc, store := newTestUseCase(repo, notifier, 0)

		// Act
		action, err := uc.AddToCart(context.Background(), "1")

		// Assert
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Equal(t, "Out of Stock", action.Notice.Title)
		assert.True(t, store.View().IsEmpty())
		notifier.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		// Arrange
		repo := new(MockCatalogRepository)
		notifier := new(MockNotifier)
		repo.On("GetProduct", mock.Anything, "9").Return(Product{}, ErrProductNotFound)
		uc, _ := newTestUseCase(repo, notifier, 0)

		// Act
		_, err := uc.AddToCart(context.Background(), "9")

		// Assert
		assert.ErrorIs(t, err, ErrProductNotFound)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func TestStorefrontUseCase_PlaceOrder(t *testing.T) {
	seed := func(t *testing.T, delay time.Duration) (*StorefrontUseCase, *MockNotifier) {
		repo := new(MockCatalogRepository)
		repo.On("GetProduct", mock.Anything, "1").Return(product("1", "299.99"), nil)
		notifier := new(MockNotifier)
		notifier.On("Notify", mock.Anything, mock.Anything)
		uc, _ := newTestUseCase(repo, notifier, delay)
		_, err := uc.AddToCart(context.Background(), "1")
		require.NoError(t, err)
		return uc, notifier
	}

	t.Run("empty cart", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUseCase(new(MockCatalogRepository), new(MockNotifier), 0)

		// Act
		placement, err := uc.PlaceOrder(context.Background(), validDetails())

		// Assert
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Empty(t, placement.Handoff.OrderID)
	})

	t.Run("missing information", func(t *testing.T) {
		for _, details := range []CustomerDetails{
			{Name: "", Email: "a@x", Phone: "1"},
			{Name: "A", Email: "  ", Phone: "1"},
			{Name: "A", Email: "a@x", Phone: ""},
		} {
			// Arrange
			uc, _ := seed(t, 0)

			// Act
			placement, err := uc.PlaceOrder(context.Background(), details)

			// Assert
			assert.ErrorIs(t, err, ErrMissingInformation)
			assert.Equal(t, "Missing Information", placement.Notice.Title)
			assert.Equal(t, "Please fill in all required fields.", placement.Notice.Description)
			assert.Empty(t, placement.RedirectURL)
			assert.Equal(t, 1, uc.Cart(context.Background()).ItemCount())
		}
	})

	t.Run("invalid payment method", func(t *testing.T) {
		// Arrange
		uc, _ := seed(t, 0)
		details := validDetails()
		details.PaymentMethod = "bitcoin"

		// Act
		placement, err := uc.PlaceOrder(context.Background(), details)

		// Assert
		assert.ErrorIs(t, err, handoff.ErrInvalidPaymentMethod)
		assert.Equal(t, "Invalid Payment Method", placement.Notice.Title)
	})

	t.Run("hands off to delivery service", func(t *testing.T) {
		// Arrange
		uc, notifier := seed(t, 0)

		// Act
		placement, err := uc.PlaceOrder(context.Background(), validDetails())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "ORD-1-1", placement.Handoff.OrderID)
		assert.Equal(t, "333.98", placement.Handoff.Amount.StringFixed(2))
		assert.Equal(t, "Redirecting to Delivery Service", placement.Notice.Title)
		assert.Equal(t,
			"http://delivery.test/delivery-service/payment?order_id=ORD-1-1&amount=333.98&email=ana%40example.com&name=Ana&payment_method=card",
			placement.RedirectURL,
		)
		// o carrinho só é limpo na confirmação
		assert.Equal(t, 1, uc.Cart(context.Background()).ItemCount())
		notifier.AssertCalled(t, "Notify", mock.Anything, noticeRedirecting())
	})

	t.Run("empty payment method defaults to card", func(t *testing.T) {
		// Arrange
		uc, _ := seed(t, 0)
		details := validDetails()
		details.PaymentMethod = ""

		// Act
		placement, err := uc.PlaceOrder(context.Background(), details)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, handoff.PaymentMethodCard, placement.Handoff.PaymentMethod)
	})

	t.Run("abandoned during redirect delay", func(t *testing.T) {
		// Arrange
		uc, _ := seed(t, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		// Act
		placement, err := uc.PlaceOrder(ctx, validDetails())

		// Assert
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, placement.RedirectURL)
	})

	t.Run("waits the redirect delay", func(t *testing.T) {
		// Arrange
		uc, _ := seed(t, 50*time.Millisecond)
		start := time.Now()

		// Act
		_, err := uc.PlaceOrder(context.Background(), validDetails())

		// Assert
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
}

func TestStorefrontUseCase_ConfirmOrder(t *testing.T) {
	t.Run("clears the cart", func(t *testing.T) {
		// Arrange
		uc, store := newTestUseCase(new(MockCatalogRepository), new(MockNotifier), 0)
		store.Dispatch(context.Background(), AddToCart{Product: product("1", "10")})
		q := url.Values{"order_id": {"ORD-1-1"}, "tracking": {"DLV-000001"}}

		// Act
		confirmation, err := uc.ConfirmOrder(context.Background(), q)
		_, again := uc.ConfirmOrder(context.Background(), q)

		// Assert
		require.NoError(t, err)
		require.NoError(t, again)
		assert.Equal(t, "ORD-1-1", confirmation.OrderID)
		assert.Equal(t, "DLV-000001", confirmation.TrackingNumber)
		assert.True(t, store.View().IsEmpty())
	})

	t.Run("missing context leaves cart alone", func(t *testing.T) {
		// Arrange
		uc, store := newTestUseCase(new(MockCatalogRepository), new(MockNotifier), 0)
		store.Dispatch(context.Background(), AddToCart{Product: product("1", "10")})

		// Act
		_, err := uc.ConfirmOrder(context.Background(), url.Values{"order_id": {"ORD-1-1"}})

		// Assert
		assert.ErrorIs(t, err, handoff.ErrMissingHandoff)
		assert.Equal(t, 1, store.View().ItemCount())
	})
}

func TestStorefrontUseCase_TrackOrder(t *testing.T) {
	// Arrange
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Once()
	uc, _ := newTestUseCase(new(MockCatalogRepository), notifier, 0)

	// Act
	n, err := uc.TrackOrder(context.Background(), "DLV-123456")
	_, missing := uc.TrackOrder(context.Background(), " ")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Track your order with: DLV-123456", n.Description)
	assert.True(t, errors.Is(missing, handoff.ErrMissingHandoff))
	notifier.AssertExpectations(t)
}

func TestStorefrontUseCase_ListProducts(t *testing.T) {
	// Arrange
	repo := new(MockCatalogRepository)
	repo.On("ListProducts", mock.Anything).Return([]Product(nil), errors.New("connection refused"))
	uc, _ := newTestUseCase(repo, new(MockNotifier), 0)

	// Act
	_, err := uc.ListProducts(context.Background())

	// Assert
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to list products"))
}

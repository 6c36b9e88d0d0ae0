package storefront

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewCartStore(t *testing.T) {
	// Act
	store := NewCartStore(zap.NewNop())

	// Assert
	view := store.View()
	assert.True(t, view.IsEmpty())
	assert.True(t, view.Total.IsZero())
}

func TestCartStore_ViewIsACopy(t *testing.T) {
	// Arrange
	store := NewCartStore(zap.NewNop())
	store.Dispatch(context.Background(), AddToCart{Product: product("1", "10")})

	// Act
	view := store.View()
	view.Items[0].Quantity = 99

	// Assert
	assert.Equal(t, 1, store.View().Items[0].Quantity)
}

func TestCartStore_ConcurrentDispatch(t *testing.T) {
	// Arrange
	store := NewCartStore(zap.NewNop())
	p := product("1", "0.10")
	var wg sync.WaitGroup

	// Act
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Dispatch(context.Background(), AddToCart{Product: p})
		}()
	}
	wg.Wait()

	// Assert
	view := store.View()
	require.Len(t, view.Items, 1)
	assert.Equal(t, 100, view.Items[0].Quantity)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(10)))
}

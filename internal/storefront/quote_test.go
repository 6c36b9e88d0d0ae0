package storefront

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGrandTotal(t *testing.T) {
	tests := []struct {
		subtotal string
		want     string
	}{
		{"0", "9.99"},
		{"100", "117.99"},
		{"299.99", "333.98"},
		{"599.98", "657.97"},
		{"1299.99", "1413.98"},
	}

	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			got := GrandTotal(decimal.RequireFromString(tt.subtotal))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestNewQuote(t *testing.T) {
	// Arrange
	cart := cartOf(
		AddToCart{Product: product("1", "299.99")},
		AddToCart{Product: product("1", "299.99")},
	)

	// Act
	q := NewQuote(cart)

	// Assert
	assert.Equal(t, 2, q.ItemCount)
	assert.Equal(t, "599.98", q.Subtotal.StringFixed(2))
	assert.Equal(t, "9.99", q.Shipping.StringFixed(2))
	assert.Equal(t, "48.00", q.Tax.StringFixed(2))
	assert.Equal(t, "657.97", q.Total.StringFixed(2))
	// o valor exato não é arredondado antes da renderização
	assert.True(t, q.Tax.Equal(decimal.RequireFromString("47.9984")))
}

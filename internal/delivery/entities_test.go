package delivery

import (
	"testing"
	"time"

	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/notice"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(id string) handoff.OrderHandoff {
	return handoff.OrderHandoff{
		OrderID:       id,
		Amount:        decimal.RequireFromString("333.98"),
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		PaymentMethod: handoff.PaymentMethodUPI,
	}
}

func fullAddress() Address {
	return Address{Street: "123 Main Street", City: "New York", State: "NY", PostalCode: "10001"}
}

func TestNewSession(t *testing.T) {
	// Act
	s := NewSession(testOrder("ORD-1-1"))

	// Assert
	assert.Equal(t, StateAwaitingAddress, s.State)
	assert.Empty(t, s.TrackingNumber)
	assert.Zero(t, s.Attempts)
	assert.WithinDuration(t, time.Now(), s.CreatedAt, time.Second)
}

func TestAddress_Complete(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want bool
	}{
		{"all required fields", fullAddress(), true},
		{"country is optional", Address{Street: "a", City: "b", State: "c", PostalCode: "d", Country: ""}, true},
		{"missing street", Address{City: "b", State: "c", PostalCode: "d"}, false},
		{"blank city", Address{Street: "a", City: "  ", State: "c", PostalCode: "d"}, false},
		{"missing state", Address{Street: "a", City: "b", PostalCode: "d"}, false},
		{"missing postal code", Address{Street: "a", City: "b", State: "c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.addr.Complete())
		})
	}
}

func TestSession_Transitions(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		// Arrange
		s := NewSession(testOrder("ORD-1-1"))

		// Act
		require.NoError(t, s.StartProcessing(fullAddress()))
		require.NoError(t, s.Succeed("DLV-000001"))
		confirmation, err := s.Confirmation()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, StateSucceeded, s.State)
		assert.Equal(t, handoff.Confirmation{OrderID: "ORD-1-1", TrackingNumber: "DLV-000001"}, confirmation)
		require.NotNil(t, s.Notice)
		assert.Equal(t, "Payment Successful!", s.Notice.Title)
		assert.Equal(t, "Your order has been confirmed. Tracking: DLV-000001", s.Notice.Description)
	})

	t.Run("incomplete address keeps awaiting", func(t *testing.T) {
		s := NewSession(testOrder("ORD-1-1"))

		err := s.StartProcessing(Address{Street: "x"})

		assert.ErrorIs(t, err, ErrMissingAddress)
		assert.Equal(t, StateAwaitingAddress, s.State)
		assert.Zero(t, s.Attempts)
	})

	t.Run("failed session accepts retry", func(t *testing.T) {
		s := NewSession(testOrder("ORD-1-1"))
		require.NoError(t, s.StartProcessing(fullAddress()))
		require.NoError(t, s.Fail("card declined"))
		assert.Equal(t, "card declined", s.FailureReason)
		require.NotNil(t, s.Notice)
		assert.Equal(t, "Payment Failed", s.Notice.Title)
		assert.Equal(t, notice.VariantDestructive, s.Notice.Variant)

		require.NoError(t, s.StartProcessing(fullAddress()))

		assert.Equal(t, StateProcessing, s.State)
		assert.Empty(t, s.FailureReason)
		assert.Nil(t, s.Notice)
		assert.Equal(t, 2, s.Attempts)
	})

	t.Run("invalid transitions", func(t *testing.T) {
		s := NewSession(testOrder("ORD-1-1"))

		assert.ErrorIs(t, s.Succeed("DLV-1"), ErrInvalidTransition)
		assert.ErrorIs(t, s.Fail("x"), ErrInvalidTransition)

		require.NoError(t, s.StartProcessing(fullAddress()))
		assert.ErrorIs(t, s.StartProcessing(fullAddress()), ErrInvalidTransition)

		require.NoError(t, s.Succeed("DLV-1"))
		assert.ErrorIs(t, s.StartProcessing(fullAddress()), ErrInvalidTransition)
		assert.ErrorIs(t, s.Fail("late"), ErrInvalidTransition)
	})

	t.Run("confirmation requires success", func(t *testing.T) {
		s := NewSession(testOrder("ORD-1-1"))
		require.NoError(t, s.StartProcessing(fullAddress()))

		_, err := s.Confirmation()

		assert.ErrorIs(t, err, ErrNotReady)
	})
}

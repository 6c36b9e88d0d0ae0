package storefront

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, price string) Product {
	return Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price), Stock: 10}
}

func cartOf(intents ...Intent) Cart {
	state := Cart{Items: []CartItem{}}
	for _, i := range intents {
		state = Reduce(state, i)
	}
	return state
}

func TestReduce_AddToCart(t *testing.T) {
	t.Run("appends new product with quantity 1", func(t *testing.T) {
		// Act
		cart := cartOf(AddToCart{Product: product("1", "299.99")})

		// Assert
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
		assert.True(t, cart.Total.Equal(decimal.RequireFromString("299.99")))
	})

	t.Run("increments existing line in place", func(t *testing.T) {
		// Arrange
		a, b := product("1", "10"), product("2", "5")

		// Act
		cart := cartOf(AddToCart{Product: a}, AddToCart{Product: b}, AddToCart{Product: a})

		// Assert
		require.Len(t, cart.Items, 2)
		assert.Equal(t, "1", cart.Items[0].ID)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.Equal(t, "2", cart.Items[1].ID)
		assert.True(t, cart.Total.Equal(decimal.NewFromInt(25)))
	})

	t.Run("ignores stock", func(t *testing.T) {
		// Arrange
		p := product("1", "1")
		p.Stock = 0

		// Act
		cart := cartOf(AddToCart{Product: p})

		// Assert
		assert.Equal(t, 1, cart.ItemCount())
	})
}

func TestReduce_RemoveFromCart(t *testing.T) {
	// Arrange
	cart := cartOf(AddToCart{Product: product("1", "10")}, AddToCart{Product: product("2", "5")})

	// Act
	removed := Reduce(cart, RemoveFromCart{ProductID: "1"})
	missing := Reduce(cart, RemoveFromCart{ProductID: "42"})

	// Assert
	require.Len(t, removed.Items, 1)
	assert.Equal(t, "2", removed.Items[0].ID)
	assert.True(t, removed.Total.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, cart, missing)
}

func TestReduce_UpdateQuantity(t *testing.T) {
	base := cartOf(AddToCart{Product: product("1", "10")}, AddToCart{Product: product("2", "5")})

	tests := []struct {
		name      string
		intent    UpdateQuantity
		wantCount int
		wantTotal string
		wantLines int
	}{
		{"positive sets quantity", UpdateQuantity{ProductID: "2", Quantity: 4}, 5, "30", 2},
		{"zero removes line", UpdateQuantity{ProductID: "1", Quantity: 0}, 1, "5", 1},
		{"negative is ignored", UpdateQuantity{ProductID: "1", Quantity: -3}, 2, "15", 2},
		{"unknown id is ignored", UpdateQuantity{ProductID: "9", Quantity: 3}, 2, "15", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			cart := Reduce(base, tt.intent)

			// Assert
			assert.Equal(t, tt.wantCount, cart.ItemCount())
			assert.Len(t, cart.Items, tt.wantLines)
			assert.True(t, cart.Total.Equal(decimal.RequireFromString(tt.wantTotal)), "total %s", cart.Total)
		})
	}
}

func TestReduce_ClearCart(t *testing.T) {
	// Arrange
	cart := cartOf(AddToCart{Product: product("1", "10")}, AddToCart{Product: product("2", "5")})

	// Act
	cleared := Reduce(cart, ClearCart{})

	// Assert
	assert.Empty(t, cleared.Items)
	assert.True(t, cleared.Total.IsZero())
	assert.Equal(t, cleared, Reduce(cleared, ClearCart{}))
}

func TestReduce_DoesNotAliasInput(t *testing.T) {
	// Arrange
	before := cartOf(AddToCart{Product: product("1", "10")})

	// Act
	_ = Reduce(before, AddToCart{Product: product("1", "10")})
	_ = Reduce(before, RemoveFromCart{ProductID: "1"})

	// Assert
	require.Len(t, before.Items, 1)
	assert.Equal(t, 1, before.Items[0].Quantity)
}

func TestReduce_ZeroQuantityEqualsRemove(t *testing.T) {
	cart := cartOf(AddToCart{Product: product("1", "10")}, AddToCart{Product: product("2", "7.5")})

	assert.Equal(t,
		Reduce(cart, RemoveFromCart{ProductID: "1"}),
		Reduce(cart, UpdateQuantity{ProductID: "1", Quantity: 0}),
	)
}

func TestReduce_AddIsCommutativeForQuantities(t *testing.T) {
	a, b := product("1", "10"), product("2", "7.5")

	ab := cartOf(AddToCart{Product: a}, AddToCart{Product: b})
	ba := cartOf(AddToCart{Product: b}, AddToCart{Product: a})

	assert.Equal(t, ab.ItemCount(), ba.ItemCount())
	assert.True(t, ab.Total.Equal(ba.Total))
	assert.Equal(t, ab.Items[ab.Find("1")].Quantity, ba.Items[ba.Find("1")].Quantity)
}

// Sequências aleatórias de intents preservam as invariantes do carrinho
func TestReduce_InvariantsHoldForRandomSequences(t *testing.T) {
	catalog := DefaultCatalog()
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		state := Cart{Items: []CartItem{}}
		var firstSeen []string

		for step := 0; step < 50; step++ {
			p := catalog[rng.Intn(len(catalog))]
			var intent Intent
			switch rng.Intn(10) {
			case 0, 1, 2, 3:
				intent = AddToCart{Product: p}
			case 4, 5:
				intent = RemoveFromCart{ProductID: p.ID}
			case 6, 7, 8:
				intent = UpdateQuantity{ProductID: p.ID, Quantity: rng.Intn(6) - 1}
			default:
				intent = ClearCart{}
			}
			state = Reduce(state, intent)

			// ordem esperada: primeira inserção dentre as linhas ainda presentes
			if _, ok := intent.(AddToCart); ok && !contains(firstSeen, p.ID) {
				firstSeen = append(firstSeen, p.ID)
			}
			firstSeen = keepPresent(firstSeen, state)

			assertInvariants(t, state, firstSeen)
		}
	}
}

func assertInvariants(t *testing.T, state Cart, order []string) {
	t.Helper()

	seen := map[string]bool{}
	expected := decimal.Zero
	ids := make([]string, 0, len(state.Items))
	for _, item := range state.Items {
		require.False(t, seen[item.ID], "duplicate line %s", item.ID)
		seen[item.ID] = true
		require.GreaterOrEqual(t, item.Quantity, 1)
		expected = expected.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		ids = append(ids, item.ID)
	}
	require.True(t, state.Total.Equal(expected), "total %s != %s", state.Total, expected)
	require.Equal(t, order, ids)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func keepPresent(ids []string, state Cart) []string {
	out := []string{}
	for _, id := range ids {
		if state.Find(id) >= 0 {
			out = append(out, id)
		}
	}
	return out
}

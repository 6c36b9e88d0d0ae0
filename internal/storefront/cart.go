package storefront

import (
	"github.com/shopspring/decimal"
)

// Intent é uma mutação do carrinho. O conjunto é fechado: AddToCart,
// RemoveFromCart, UpdateQuantity e ClearCart.
type Intent interface {
	Name() string
	apply(items []CartItem) []CartItem
}

type AddToCart struct {
	Product Product
}

type RemoveFromCart struct {
	ProductID string
}

type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

type ClearCart struct{}

func (AddToCart) Name() string      { return "add_to_cart" }
func (RemoveFromCart) Name() string { return "remove_from_cart" }
func (UpdateQuantity) Name() string { return "update_quantity" }
func (ClearCart) Name() string      { return "clear_cart" }

// Reduce aplica um intent e devolve um novo Cart. O total é sempre recalculado
// a partir dos itens; o slice de entrada nunca é modificado.
func Reduce(state Cart, intent Intent) Cart {
	items := make([]CartItem, len(state.Items))
	copy(items, state.Items)

	items = intent.apply(items)
	return Cart{Items: items, Total: subtotal(items)}
}

func (a AddToCart) apply(items []CartItem) []CartItem {
	if i := (Cart{Items: items}).Find(a.Product.ID); i >= 0 {
		items[i].Quantity++
		return items
	}
	return append(items, CartItem{Product: a.Product, Quantity: 1})
}

func (r RemoveFromCart) apply(items []CartItem) []CartItem {
	out := items[:0]
	for _, item := range items {
		if item.ID != r.ProductID {
			out = append(out, item)
		}
	}
	return out
}

func (u UpdateQuantity) apply(items []CartItem) []CartItem {
	if u.Quantity == 0 {
		return RemoveFromCart{ProductID: u.ProductID}.apply(items)
	}
	// quantidade negativa quebraria a invariante quantity >= 1
	if u.Quantity < 0 {
		return items
	}
	if i := (Cart{Items: items}).Find(u.ProductID); i >= 0 {
		items[i].Quantity = u.Quantity
	}
	return items
}

func (ClearCart) apply([]CartItem) []CartItem {
	return []CartItem{}
}

func subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

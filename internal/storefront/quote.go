package storefront

import "github.com/shopspring/decimal"

var (
	ShippingFee = decimal.RequireFromString("9.99")
	TaxRate     = decimal.RequireFromString("0.08")
)

// Quote é o resumo do pedido exibido no checkout. Os valores são exatos;
// o arredondamento acontece só na renderização.
type Quote struct {
	Items     []CartItem
	ItemCount int
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// NewQuote calcula subtotal + frete + imposto sobre o subtotal
func NewQuote(cart Cart) Quote {
	return Quote{
		Items:     cart.Items,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Total,
		Shipping:  ShippingFee,
		Tax:       cart.Total.Mul(TaxRate),
		Total:     GrandTotal(cart.Total),
	}
}

// GrandTotal é o valor levado ao serviço de entrega
func GrandTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(ShippingFee).Add(subtotal.Mul(TaxRate))
}

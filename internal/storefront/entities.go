package storefront

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrOutOfStock         = errors.New("product out of stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingInformation = errors.New("missing customer information")
)

// Product representa um item do catálogo. O core nunca altera um Product.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
}

// InStock indica se o produto pode ser adicionado pelas telas
func (p Product) InStock() bool {
	return p.Stock > 0
}

// CartItem é um produto com quantidade positiva
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal é preço × quantidade, sem arredondamento
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart é o estado do carrinho da sessão
type Cart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ItemCount soma as quantidades (badge do cabeçalho)
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find devolve a posição do produto no carrinho, ou -1
func (c Cart) Find(productID string) int {
	for i, item := range c.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// CustomerDetails vem do formulário de checkout
type CustomerDetails struct {
	Name          string `json:"name" form:"name"`
	Email         string `json:"email" form:"email"`
	Phone         string `json:"phone" form:"phone"`
	PaymentMethod string `json:"payment_method" form:"payment_method"`
}

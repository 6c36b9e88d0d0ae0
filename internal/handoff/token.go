package handoff

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Rotas do storefront e do serviço de entrega. São o único contrato entre as telas.
const (
	PathCatalog      = "/"
	PathCart         = "/cart"
	PathCheckout     = "/checkout"
	PathDelivery     = "/delivery-service/payment"
	PathConfirmation = "/order-confirmation"
)

var ErrMissingHandoff = errors.New("missing handoff context")

// PaymentMethod representa o meio de pagamento escolhido no checkout
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodPayPal PaymentMethod = "paypal"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// ParsePaymentMethod aceita card, upi ou paypal. Vazio vira card, o padrão do formulário de checkout.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return PaymentMethodCard, nil
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodPayPal:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, raw)
	}
}

// PaymentMethods lista os meios aceitos, na ordem exibida no checkout
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCard, PaymentMethodUPI, PaymentMethodPayPal}
}

// OrderHandoff é o token levado do checkout para o serviço de entrega via query string
type OrderHandoff struct {
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	CustomerName  string          `json:"name"`
	CustomerEmail string          `json:"email"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// Query serializa o token mantendo a ordem order_id, amount, email, name, payment_method.
func (t OrderHandoff) Query() string {
	return encodeOrdered([][2]string{
		{"order_id", t.OrderID},
		{"amount", t.Amount.StringFixed(2)},
		{"email", t.CustomerEmail},
		{"name", t.CustomerName},
		{"payment_method", string(t.PaymentMethod)},
	})
}

// URL monta o endereço da tela de entrega. base vazio produz um caminho relativo.
func (t OrderHandoff) URL(base string) string {
	return strings.TrimRight(base, "/") + PathDelivery + "?" + t.Query()
}

// ParseOrderHandoff lê o token recebido pela tela de entrega.
// order_id e amount são obrigatórios. payment_method ausente vira card; desconhecido invalida o token.
func ParseOrderHandoff(q url.Values) (OrderHandoff, error) {
	orderID := strings.TrimSpace(q.Get("order_id"))
	rawAmount := strings.TrimSpace(q.Get("amount"))
	if orderID == "" || rawAmount == "" {
		return OrderHandoff{}, ErrMissingHandoff
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil || amount.IsNegative() {
		return OrderHandoff{}, fmt.Errorf("%w: bad amount %q", ErrMissingHandoff, rawAmount)
	}

	method, err := ParsePaymentMethod(q.Get("payment_method"))
	if err != nil {
		return OrderHandoff{}, fmt.Errorf("%w: %w", ErrMissingHandoff, err)
	}

	return OrderHandoff{
		OrderID:       orderID,
		Amount:        amount,
		CustomerName:  q.Get("name"),
		CustomerEmail: q.Get("email"),
		PaymentMethod: method,
	}, nil
}

// Confirmation é o token devolvido pelo serviço de entrega para a confirmação
type Confirmation struct {
	OrderID        string `json:"order_id"`
	TrackingNumber string `json:"tracking_number"`
}

func (c Confirmation) Query() string {
	return encodeOrdered([][2]string{
		{"order_id", c.OrderID},
		{"tracking", c.TrackingNumber},
	})
}

func (c Confirmation) URL(base string) string {
	return strings.TrimRight(base, "/") + PathConfirmation + "?" + c.Query()
}

func ParseConfirmation(q url.Values) (Confirmation, error) {
	orderID := strings.TrimSpace(q.Get("order_id"))
	tracking := strings.TrimSpace(q.Get("tracking"))
	if orderID == "" || tracking == "" {
		return Confirmation{}, ErrMissingHandoff
	}
	return Confirmation{OrderID: orderID, TrackingNumber: tracking}, nil
}

// url.Values.Encode ordena as chaves; aqui a ordem de escrita é preservada.
func encodeOrdered(pairs [][2]string) string {
	var b strings.Builder
	for i, kv := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv[1]))
	}
	return b.String()
}

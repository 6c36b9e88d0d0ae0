package shopper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/matheusmosca/techstore/internal/handoff"
	"go.uber.org/zap"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// Notice é o toast ecoado no corpo das respostas
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

type Product struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Price   string `json:"price"`
	Stock   int    `json:"stock"`
	InStock bool   `json:"in_stock"`
}

type Line struct {
	Product
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type Cart struct {
	Items     []Line `json:"items"`
	ItemCount int    `json:"item_count"`
	Subtotal  string `json:"subtotal"`
}

type Quote struct {
	Items     []Line `json:"items"`
	ItemCount int    `json:"item_count"`
	Subtotal  string `json:"subtotal"`
	Shipping  string `json:"shipping"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
}

type DeliveryScreen struct {
	OrderID        string `json:"order_id"`
	Customer       string `json:"customer"`
	Email          string `json:"email"`
	Amount         string `json:"amount"`
	PaymentMethod  string `json:"payment_method"`
	State          string `json:"state"`
	TrackingNumber string `json:"tracking_number"`
	FailureReason  string `json:"failure_reason"`
}

type Confirmation struct {
	OrderID        string   `json:"order_id"`
	TrackingNumber string   `json:"tracking_number"`
	WhatsNext      []string `json:"whats_next"`
}

// Page é qualquer tela devolvida pelos serviços. Só os campos da tela pedida vêm preenchidos.
type Page struct {
	Status   int    `json:"-"`
	Location string `json:"-"`

	Error          string          `json:"error"`
	Notice         *Notice         `json:"notice"`
	Products       []Product       `json:"products"`
	Product        *Product        `json:"product"`
	ItemCount      int             `json:"item_count"`
	Cart           *Cart           `json:"cart"`
	Quote          *Quote          `json:"quote"`
	PaymentMethods []string        `json:"payment_methods"`
	Delivery       *DeliveryScreen `json:"delivery"`
	Confirmation   *Confirmation   `json:"confirmation"`
}

// Redirected indica uma navegação (303 + Location)
func (p *Page) Redirected() bool {
	return p.Status == http.StatusSeeOther && p.Location != ""
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"`
}

type Customer struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// Client navega pelas telas da loja e do serviço de entrega via HTTP.
// Redirects nunca são seguidos automaticamente; quem chama decide.
type Client struct {
	http          *resty.Client
	storefrontURL string
	logger        *zap.Logger
}

// NewClient cria uma nova instância de Client
func NewClient(storefrontURL string, logger *zap.Logger) *Client {
	c := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))

	return &Client{
		http:          c,
		storefrontURL: strings.TrimRight(storefrontURL, "/"),
		logger:        logger,
	}
}

func (c *Client) store(path string) string {
	return c.storefrontURL + path
}

func (c *Client) do(ctx context.Context, method, target string, body any) (*Page, error) {
	page := &Page{}
	req := c.http.R().
		SetContext(ctx).
		SetResult(page).
		SetError(page)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, target)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}

	page.Status = resp.StatusCode()
	page.Location = resp.Header().Get("Location")
	// resty só decodifica 2xx e erros; redirects também carregam o toast
	if page.Redirected() && len(resp.Body()) > 0 {
		if err := c.http.JSONUnmarshal(resp.Body(), page); err != nil {
			c.logger.Debug("redirect without json body", zap.String("url", target), zap.Error(err))
		}
	}
	c.logger.Debug("shopper request",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", page.Status),
		zap.String("location", page.Location),
	)
	return page, nil
}

func (c *Client) Catalog(ctx context.Context) (*Page, error) {
	return c.do(ctx, http.MethodGet, c.store(handoff.PathCatalog), nil)
}

func (c *Client) Product(ctx context.Context, id string) (*Page, error) {
	return c.do(ctx, http.MethodGet, c.store("/product/"+url.PathEscape(id)), nil)
}

func (c *Client) AddToCart(ctx context.Context, id string) (*Page, error) {
	return c.do(ctx, http.MethodPost, c.store("/product/"+url.PathEscape(id)+"/add"), nil)
}

func (c *Client) BuyNow(ctx context.Context, id string) (*Page, error) {
	return c.do(ctx, http.MethodPost, c.store("/product/"+url.PathEscape(id)+"/buy"), nil)
}

func (c *Client) Cart(ctx context.Context) (*Page, error) {
	return c.do(ctx, http.MethodGet, c.store(handoff.PathCart), nil)
}

func (c *Client) UpdateQuantity(ctx context.Context, id string, quantity int) (*Page, error) {
	return c.do(ctx, http.MethodPut, c.store(handoff.PathCart+"/items/"+url.PathEscape(id)), map[string]int{"quantity": quantity})
}

func (c *Client) RemoveFromCart(ctx context.Context, id string) (*Page, error) {
	return c.do(ctx, http.MethodDelete, c.store(handoff.PathCart+"/items/"+url.PathEscape(id)), nil)
}

func (c *Client) ClearCart(ctx context.Context) (*Page, error) {
	return c.do(ctx, http.MethodDelete, c.store(handoff.PathCart), nil)
}

func (c *Client) Checkout(ctx context.Context) (*Page, error) {
	return c.do(ctx, http.MethodGet, c.store(handoff.PathCheckout), nil)
}

func (c *Client) PlaceOrder(ctx context.Context, customer Customer) (*Page, error) {
	return c.do(ctx, http.MethodPost, c.store(handoff.PathCheckout), customer)
}

func (c *Client) TrackOrder(ctx context.Context, tracking string) (*Page, error) {
	return c.do(ctx, http.MethodPost, c.store(handoff.PathConfirmation+"/track?tracking="+url.QueryEscape(tracking)), nil)
}

// Visit abre um endereço absoluto, normalmente o Location de um redirect
func (c *Client) Visit(ctx context.Context, location string) (*Page, error) {
	return c.do(ctx, http.MethodGet, location, nil)
}

func (c *Client) SubmitAddress(ctx context.Context, deliveryURL, orderID string, addr Address) (*Page, error) {
	return c.do(ctx, http.MethodPost, deliveryEndpoint(deliveryURL, "/address", orderID), addr)
}

func (c *Client) DeliveryStatus(ctx context.Context, deliveryURL, orderID string) (*Page, error) {
	return c.do(ctx, http.MethodGet, deliveryEndpoint(deliveryURL, "/status", orderID), nil)
}

func (c *Client) ReturnToStore(ctx context.Context, deliveryURL, orderID string) (*Page, error) {
	return c.do(ctx, http.MethodPost, deliveryEndpoint(deliveryURL, "/return", orderID), nil)
}

func (c *Client) DismissDelivery(ctx context.Context, deliveryURL, orderID string) (*Page, error) {
	return c.do(ctx, http.MethodDelete, deliveryEndpoint(deliveryURL, "", orderID), nil)
}

// WaitForPayment consulta o status até sair de processing
func (c *Client) WaitForPayment(ctx context.Context, deliveryURL, orderID string, interval time.Duration) (*Page, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		page, err := c.DeliveryStatus(ctx, deliveryURL, orderID)
		if err != nil {
			return nil, err
		}
		if page.Status != http.StatusOK || page.Delivery == nil {
			return page, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, page.Status)
		}
		if page.Delivery.State != "processing" {
			return page, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// DeliveryBase extrai scheme://host de um Location do serviço de entrega
func DeliveryBase(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid delivery location %q: %w", location, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid delivery location %q: not absolute", location)
	}
	return u.Scheme + "://" + u.Host, nil
}

func deliveryEndpoint(base, suffix, orderID string) string {
	return strings.TrimRight(base, "/") + handoff.PathDelivery + suffix + "?order_id=" + url.QueryEscape(orderID)
}

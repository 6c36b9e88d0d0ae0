package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/notice"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UseCaseInterface define a interface para o use case
type UseCaseInterface interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	AddToCart(ctx context.Context, productID string) (CartAction, error)
	BuyNow(ctx context.Context, productID string) (CartAction, error)
	Cart(ctx context.Context) Cart
	UpdateQuantity(ctx context.Context, productID string, quantity int) Cart
	RemoveFromCart(ctx context.Context, productID string) Cart
	ClearCart(ctx context.Context) Cart
	Quote(ctx context.Context) (Quote, error)
	PlaceOrder(ctx context.Context, details CustomerDetails) (Placement, error)
	ConfirmOrder(ctx context.Context, query url.Values) (handoff.Confirmation, error)
	TrackOrder(ctx context.Context, tracking string) (notice.Notice, error)
}

// StorefrontHandler contém os handlers HTTP das telas da loja
type StorefrontHandler struct {
	useCase UseCaseInterface
	tracer  trace.Tracer
}

// NewStorefrontHandler cria uma nova instância de StorefrontHandler
func NewStorefrontHandler(useCase UseCaseInterface, tracer trace.Tracer) *StorefrontHandler {
	return &StorefrontHandler{
		useCase: useCase,
		tracer:  tracer,
	}
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// Catalog lista os produtos e o badge do carrinho
func (h *StorefrontHandler) Catalog(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.useCase.ListProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   views,
		"item_count": h.useCase.Cart(ctx).ItemCount(),
	})
}

// Product exibe o detalhe de um produto
func (h *StorefrontHandler) Product(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := h.useCase.GetProduct(ctx, c.Param("id"))
	if err != nil {
		h.productError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":    newProductView(product),
		"item_count": h.useCase.Cart(ctx).ItemCount(),
	})
}

// AddToCart é o botão "Add to Cart" da tela de produto
func (h *StorefrontHandler) AddToCart(c *gin.Context) {
	action, err := h.useCase.AddToCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.productActionError(c, action, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":   newCartView(action.Cart),
		"notice": action.Notice,
	})
}

// BuyNow adiciona o produto e navega para o carrinho
func (h *StorefrontHandler) BuyNow(c *gin.Context) {
	action, err := h.useCase.BuyNow(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.productActionError(c, action, err)
		return
	}

	h.redirect(c, handoff.PathCart, action.Notice)
}

// Cart exibe o carrinho
func (h *StorefrontHandler) Cart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cart": newCartView(h.useCase.Cart(c.Request.Context()))})
}

// UpdateQuantity altera a quantidade de uma linha; 0 remove
func (h *StorefrontHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart := h.useCase.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, gin.H{"cart": newCartView(cart)})
}

func (h *StorefrontHandler) RemoveFromCart(c *gin.Context) {
	cart := h.useCase.RemoveFromCart(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"cart": newCartView(cart)})
}

func (h *StorefrontHandler) ClearCart(c *gin.Context) {
	cart := h.useCase.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"cart": newCartView(cart)})
}

// Checkout exibe o resumo do pedido e os meios de pagamento
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	quote, err := h.useCase.Quote(c.Request.Context())
	if errors.Is(err, ErrEmptyCart) {
		c.Redirect(http.StatusSeeOther, handoff.PathCart)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote":           newQuoteView(quote),
		"payment_methods": handoff.PaymentMethods(),
	})
}

// PlaceOrder é o submit do checkout; termina num redirect para o serviço de entrega
func (h *StorefrontHandler) PlaceOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "checkout.submit")
	defer span.End()

	var details CustomerDetails
	if err := c.ShouldBind(&details); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	placement, err := h.useCase.PlaceOrder(ctx, details)
	switch {
	case err == nil:
	case errors.Is(err, ErrEmptyCart):
		c.Redirect(http.StatusSeeOther, handoff.PathCart)
		return
	case errors.Is(err, ErrMissingInformation), errors.Is(err, handoff.ErrInvalidPaymentMethod):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "notice": placement.Notice})
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// cliente saiu da tela antes do redirecionamento
		span.RecordError(err)
		c.Status(499)
		return
	default:
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.String("order_id", placement.Handoff.OrderID))
	h.redirect(c, placement.RedirectURL, placement.Notice)
}

// OrderConfirmation é a tela final; sem order_id ou tracking volta para a loja
func (h *StorefrontHandler) OrderConfirmation(c *gin.Context) {
	confirmation, err := h.useCase.ConfirmOrder(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.Redirect(http.StatusSeeOther, handoff.PathCatalog)
		return
	}

	c.JSON(http.StatusOK, gin.H{"confirmation": newConfirmationView(confirmation)})
}

// TrackOrder é o botão "Track Order" da confirmação
func (h *StorefrontHandler) TrackOrder(c *gin.Context) {
	n, err := h.useCase.TrackOrder(c.Request.Context(), c.Query("tracking"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": n})
}

// HealthCheck verifica a saúde do serviço
func (h *StorefrontHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storefront",
	})
}

// redirect navega com 303 e ecoa o toast no corpo
func (h *StorefrontHandler) redirect(c *gin.Context, target string, n *notice.Notice) {
	c.Header("Location", target)
	c.JSON(http.StatusSeeOther, gin.H{"notice": n})
}

func (h *StorefrontHandler) productError(c *gin.Context, err error) {
	if errors.Is(err, ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
			"back":  handoff.PathCatalog,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (h *StorefrontHandler) productActionError(c *gin.Context, action CartAction, err error) {
	if errors.Is(err, ErrOutOfStock) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  err.Error(),
			"cart":   newCartView(action.Cart),
			"notice": action.Notice,
		})
		return
	}
	h.productError(c, err)
}

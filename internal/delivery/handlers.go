package delivery

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/notice"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UseCaseInterface define a interface para o use case
type UseCaseInterface interface {
	Open(ctx context.Context, query url.Values) (Session, error)
	SubmitAddress(ctx context.Context, orderID string, addr Address) (Session, *notice.Notice, error)
	Status(ctx context.Context, orderID string) (Session, error)
	ReturnToStore(ctx context.Context, orderID string) (string, error)
	Abandon(ctx context.Context, orderID string) error
	StorefrontURL() string
}

// DeliveryHandler contém os handlers HTTP do serviço de entrega
type DeliveryHandler struct {
	useCase UseCaseInterface
	tracer  trace.Tracer
}

// NewDeliveryHandler cria uma nova instância de DeliveryHandler
func NewDeliveryHandler(useCase UseCaseInterface, tracer trace.Tracer) *DeliveryHandler {
	return &DeliveryHandler{
		useCase: useCase,
		tracer:  tracer,
	}
}

var deliveryInfo = []string{
	"Standard delivery: 3-5 business days",
	"Express delivery: 1-2 business days",
	"Free shipping on orders over $50",
	"Tracking number provided after confirmation",
}

type screenView struct {
	OrderID        string   `json:"order_id"`
	Customer       string   `json:"customer"`
	Email          string   `json:"email"`
	Amount         string   `json:"amount"`
	PaymentMethod  string   `json:"payment_method"`
	State          State    `json:"state"`
	Address        Address  `json:"address"`
	TrackingNumber string   `json:"tracking_number,omitempty"`
	FailureReason  string   `json:"failure_reason,omitempty"`
	Attempts       int      `json:"attempts"`
	DeliveryInfo   []string `json:"delivery_info"`
}

func newScreenView(s Session) screenView {
	return screenView{
		OrderID:        s.Order.OrderID,
		Customer:       s.Order.CustomerName,
		Email:          s.Order.CustomerEmail,
		Amount:         "$" + s.Order.Amount.StringFixed(2),
		PaymentMethod:  strings.ToUpper(string(s.Order.PaymentMethod)) + " (Simulated for demo)",
		State:          s.State,
		Address:        s.Address,
		TrackingNumber: s.TrackingNumber,
		FailureReason:  s.FailureReason,
		Attempts:       s.Attempts,
		DeliveryInfo:   deliveryInfo,
	}
}

// Payment é a chegada na tela de entrega vinda do checkout
func (h *DeliveryHandler) Payment(c *gin.Context) {
	session, err := h.useCase.Open(c.Request.Context(), c.Request.URL.Query())
	if errors.Is(err, handoff.ErrMissingHandoff) {
		h.backToStore(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.render(c, http.StatusOK, session)
}

// SubmitAddress é o "Confirm Payment" da tela
func (h *DeliveryHandler) SubmitAddress(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "delivery.submit_address")
	defer span.End()

	orderID := c.Query("order_id")
	span.SetAttributes(attribute.String("order_id", orderID))

	var addr Address
	if err := c.ShouldBind(&addr); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, n, err := h.useCase.SubmitAddress(ctx, orderID, addr)
	switch {
	case err == nil:
		h.render(c, http.StatusAccepted, session)
	case errors.Is(err, ErrSessionNotFound):
		h.backToStore(c)
	case errors.Is(err, ErrMissingAddress):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    err.Error(),
			"notice":   n,
			"delivery": newScreenView(session),
		})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "delivery": newScreenView(session)})
	case errors.Is(err, ErrShuttingDown):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":    err.Error(),
			"notice":   n,
			"delivery": newScreenView(session),
		})
	default:
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Status é o polling da tela enquanto o pagamento processa
func (h *DeliveryHandler) Status(c *gin.Context) {
	session, err := h.useCase.Status(c.Request.Context(), c.Query("order_id"))
	if errors.Is(err, ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.render(c, http.StatusOK, session)
}

// ReturnToStore navega para a confirmação da loja
func (h *DeliveryHandler) ReturnToStore(c *gin.Context) {
	target, err := h.useCase.ReturnToStore(c.Request.Context(), c.Query("order_id"))
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, target)
	case errors.Is(err, ErrSessionNotFound):
		h.backToStore(c)
	case errors.Is(err, ErrNotReady):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Dismiss é a saída da tela; cancela o processamento pendente
func (h *DeliveryHandler) Dismiss(c *gin.Context) {
	err := h.useCase.Abandon(c.Request.Context(), c.Query("order_id"))
	if errors.Is(err, ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck verifica a saúde do serviço
func (h *DeliveryHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "delivery-service",
	})
}

// render devolve a tela com o toast do último resultado, se houver
func (h *DeliveryHandler) render(c *gin.Context, status int, session Session) {
	c.JSON(status, gin.H{
		"delivery": newScreenView(session),
		"notice":   session.Notice,
	})
}

func (h *DeliveryHandler) backToStore(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, strings.TrimRight(h.useCase.StorefrontURL(), "/")+handoff.PathCatalog)
}

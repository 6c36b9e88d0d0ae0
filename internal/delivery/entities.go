package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/matheusmosca/techstore/internal/notice"
)

var (
	ErrSessionNotFound   = errors.New("delivery session not found")
	ErrMissingAddress    = errors.New("missing address information")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrNotReady          = errors.New("payment not completed")
	ErrShuttingDown      = errors.New("delivery service is shutting down")
)

// State representa os possíveis estados da tela de entrega
type State string

const (
	StateAwaitingAddress State = "awaiting_address"
	StateProcessing      State = "processing"
	StateSucceeded       State = "succeeded"
	StateFailed          State = "failed"
)

// Address é o formulário de entrega. Country é opcional.
type Address struct {
	Street     string `json:"street" form:"street"`
	City       string `json:"city" form:"city"`
	State      string `json:"state" form:"state"`
	PostalCode string `json:"postal_code" form:"postal_code"`
	Country    string `json:"country" form:"country"`
}

// Complete indica se os campos obrigatórios estão preenchidos
func (a Address) Complete() bool {
	for _, field := range []string{a.Street, a.City, a.State, a.PostalCode} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// Session é o estado da tela de entrega para um pedido
type Session struct {
	Order          handoff.OrderHandoff `json:"order"`
	State          State                `json:"state"`
	Address        Address              `json:"address"`
	TrackingNumber string               `json:"tracking_number,omitempty"`
	FailureReason  string               `json:"failure_reason,omitempty"`
	Attempts       int                  `json:"attempts"`
	Notice         *notice.Notice       `json:"notice,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NewSession cria uma nova sessão aguardando o endereço
func NewSession(order handoff.OrderHandoff) *Session {
	now := time.Now()
	return &Session{
		Order:     order,
		State:     StateAwaitingAddress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StartProcessing aceita o endereço. Uma sessão que falhou pode tentar de novo.
func (s *Session) StartProcessing(addr Address) error {
	if s.State != StateAwaitingAddress && s.State != StateFailed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, StateProcessing)
	}
	if !addr.Complete() {
		return ErrMissingAddress
	}

	s.Address = addr
	s.State = StateProcessing
	s.FailureReason = ""
	s.Notice = nil
	s.Attempts++
	s.UpdatedAt = time.Now()
	return nil
}

// Succeed registra o rastreio; o toast do resultado fica na sessão até a próxima tentativa
func (s *Session) Succeed(tracking string) error {
	if s.State != StateProcessing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, StateSucceeded)
	}

	n := notice.New("Payment Successful!", fmt.Sprintf("Your order has been confirmed. Tracking: %s", tracking))
	s.State = StateSucceeded
	s.TrackingNumber = tracking
	s.Notice = &n
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Session) Fail(reason string) error {
	if s.State != StateProcessing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, StateFailed)
	}

	n := notice.Destructive("Payment Failed", reason)
	s.State = StateFailed
	s.FailureReason = reason
	s.Notice = &n
	s.UpdatedAt = time.Now()
	return nil
}

// Confirmation é o token para voltar à loja; só existe depois do sucesso
func (s *Session) Confirmation() (handoff.Confirmation, error) {
	if s.State != StateSucceeded {
		return handoff.Confirmation{}, fmt.Errorf("%w: session is %s", ErrNotReady, s.State)
	}
	return handoff.Confirmation{OrderID: s.Order.OrderID, TrackingNumber: s.TrackingNumber}, nil
}

package delivery

import (
	"context"
	"sync"
)

// Repository define a interface para guardar as sessões de entrega
type Repository interface {
	// CreateIfAbsent guarda a sessão se ainda não existe uma para o pedido.
	// Devolve a sessão vigente e se ela foi criada agora.
	CreateIfAbsent(ctx context.Context, session *Session) (*Session, bool, error)

	// Update aplica fn sob o lock da sessão; ErrSessionNotFound se ela sumiu
	Update(ctx context.Context, orderID string, fn func(*Session) error) (Session, error)

	// Get devolve uma cópia da sessão
	Get(ctx context.Context, orderID string) (Session, error)

	// Delete descarta a sessão
	Delete(ctx context.Context, orderID string) error
}

// InMemoryRepository implementa Repository num map protegido por mutex.
// Não há persistência entre execuções.
type InMemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewInMemoryRepository cria uma nova instância de InMemoryRepository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{sessions: make(map[string]*Session)}
}

func (r *InMemoryRepository) CreateIfAbsent(ctx context.Context, session *Session) (*Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[session.Order.OrderID]; ok {
		cp := *existing
		return &cp, false, nil
	}
	r.sessions[session.Order.OrderID] = session
	cp := *session
	return &cp, true, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, orderID string, fn func(*Session) error) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[orderID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	// fn trabalha numa cópia; erro não deixa escrita parcial
	draft := *session
	if err := fn(&draft); err != nil {
		return *session, err
	}
	*session = draft
	return draft, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, orderID string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[orderID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *session, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[orderID]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, orderID)
	return nil
}

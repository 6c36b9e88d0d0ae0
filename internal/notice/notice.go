package notice

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notice é uma notificação fire-and-forget exibida ao usuário (toast)
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

func New(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDefault}
}

func Destructive(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDestructive}
}

// Notifier é o destino dos toasts
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// LogNotifier registra cada toast no log do serviço
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notice) {
	l.logger.Info("🔔 notice",
		zap.String("title", n.Title),
		zap.String("description", n.Description),
		zap.String("variant", n.Variant),
	)
}

// Recorder guarda os toasts em memória, na ordem em que chegaram
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(ctx context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices devolve uma cópia do que foi registrado
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last devolve o último toast, se houver
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Fanout entrega o toast a vários destinos
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notice) {
	for _, target := range f {
		target.Notify(ctx, n)
	}
}

// MeterNotifier conta os toasts por título e variante
type MeterNotifier struct {
	raised metric.Int64Counter
}

func NewMeterNotifier(meter metric.Meter) *MeterNotifier {
	raised, _ := meter.Int64Counter("notices.raised", metric.WithDescription("Toasts raised, by title and variant"))
	return &MeterNotifier{raised: raised}
}

func (m *MeterNotifier) Notify(ctx context.Context, n Notice) {
	m.raised.Add(ctx, 1, metric.WithAttributes(
		attribute.String("title", n.Title),
		attribute.String("variant", n.Variant),
	))
}

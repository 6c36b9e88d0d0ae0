package delivery

import (
	"context"
	"time"

	"github.com/matheusmosca/techstore/internal/handoff"
)

// PaymentProcessor processa o pagamento de uma sessão e devolve o número de
// rastreio. Um erro leva a sessão para Failed.
type PaymentProcessor interface {
	Process(ctx context.Context, order handoff.OrderHandoff, addr Address) (string, error)
}

// SimulatedProcessor espera um atraso fixo e sempre aprova
type SimulatedProcessor struct {
	delay    time.Duration
	tracking handoff.TrackingGenerator
}

// NewSimulatedProcessor cria uma nova instância de SimulatedProcessor
func NewSimulatedProcessor(delay time.Duration, tracking handoff.TrackingGenerator) *SimulatedProcessor {
	return &SimulatedProcessor{delay: delay, tracking: tracking}
}

func (p *SimulatedProcessor) Process(ctx context.Context, order handoff.OrderHandoff, addr Address) (string, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.tracking.NewTrackingNumber(), nil
}

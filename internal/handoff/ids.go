package handoff

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// OrderIDGenerator gera identificadores de pedido únicos dentro da sessão
type OrderIDGenerator interface {
	NewOrderID() string
}

// TrackingGenerator gera números de rastreio únicos dentro da sessão
type TrackingGenerator interface {
	NewTrackingNumber() string
}

// SequentialOrderIDs produz ORD-<unix ms>-<seq>. O timestamp sozinho colide
// quando dois checkouts caem no mesmo milissegundo; a sequência desempata.
type SequentialOrderIDs struct {
	seq atomic.Uint64
	now func() time.Time
}

func NewSequentialOrderIDs() *SequentialOrderIDs {
	return &SequentialOrderIDs{now: time.Now}
}

func (g *SequentialOrderIDs) NewOrderID() string {
	n := g.seq.Add(1)
	return fmt.Sprintf("ORD-%d-%d", g.now().UnixMilli(), n)
}

const trackingSpace = 1_000_000

// SequentialTrackingNumbers produz DLV-<6 dígitos> a partir de um deslocamento
// aleatório; nenhum número se repete antes de 10^6 emissões.
type SequentialTrackingNumbers struct {
	offset uint64
	seq    atomic.Uint64
}

func NewSequentialTrackingNumbers() *SequentialTrackingNumbers {
	id := uuid.New()
	return &SequentialTrackingNumbers{offset: binary.BigEndian.Uint64(id[:8]) % trackingSpace}
}

func (g *SequentialTrackingNumbers) NewTrackingNumber() string {
	n := (g.offset + g.seq.Add(1)) % trackingSpace
	return fmt.Sprintf("DLV-%06d", n)
}

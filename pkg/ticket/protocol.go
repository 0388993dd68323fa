package ticket

import (
	"fmt"
	"sync"
	"time"

	"support-routing-be/internal/entity"
)

// typeCodes maps ticket types to the protocol prefix.
var typeCodes = map[entity.TicketType]string{
	entity.TicketTypeBug:      "BUG",
	entity.TicketTypeAccount:  "ACC",
	entity.TicketTypeSecurity: "SEC",
	entity.TicketTypeFeedback: "FBK",
}

// ProtocolGenerator issues unique protocol numbers in the form
// <TYPE>-<YYYYMMDD>-<seq>, with the sequence counted per type and per day.
// The counter is process-local; the unique index on tickets.protocol is the
// backstop against collisions across restarts or replicas.
type ProtocolGenerator struct {
	mu       sync.Mutex
	day      string
	counters map[string]int
}

func NewProtocolGenerator() *ProtocolGenerator {
	return &ProtocolGenerator{counters: make(map[string]int)}
}

// Next returns the next protocol number for the given type.
func (g *ProtocolGenerator) Next(ticketType entity.TicketType, now time.Time) string {
	code, ok := typeCodes[ticketType]
	if !ok {
		code = "GEN"
	}
	day := now.UTC().Format("20060102")

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.day != day {
		g.day = day
		g.counters = make(map[string]int)
	}
	g.counters[code]++

	return fmt.Sprintf("%s-%s-%04d", code, day, g.counters[code])
}

// Seed advances the counter for a type code past an already issued sequence
// number, used at startup to resume after a restart on the same day.
func (g *ProtocolGenerator) Seed(ticketType entity.TicketType, day string, seq int) {
	code, ok := typeCodes[ticketType]
	if !ok {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.day == "" {
		g.day = day
	}
	if g.day == day && seq > g.counters[code] {
		g.counters[code] = seq
	}
}

package ticket

import (
	"sync"
	"testing"
	"time"

	"support-routing-be/internal/entity"
)

func TestProtocolFormatAndSequence(t *testing.T) {
	g := NewProtocolGenerator()
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	if got := g.Next(entity.TicketTypeBug, now); got != "BUG-20260825-0001" {
		t.Errorf("first bug protocol = %q, want BUG-20260825-0001", got)
	}
	if got := g.Next(entity.TicketTypeBug, now); got != "BUG-20260825-0002" {
		t.Errorf("second bug protocol = %q, want BUG-20260825-0002", got)
	}

	// Sequences are independent per type.
	if got := g.Next(entity.TicketTypeSecurity, now); got != "SEC-20260825-0001" {
		t.Errorf("first security protocol = %q, want SEC-20260825-0001", got)
	}
	if got := g.Next(entity.TicketTypeAccount, now); got != "ACC-20260825-0001" {
		t.Errorf("first account protocol = %q, want ACC-20260825-0001", got)
	}
	if got := g.Next(entity.TicketTypeFeedback, now); got != "FBK-20260825-0001" {
		t.Errorf("first feedback protocol = %q, want FBK-20260825-0001", got)
	}
}

func TestProtocolDayRollover(t *testing.T) {
	g := NewProtocolGenerator()

	day1 := time.Date(2026, 8, 25, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 26, 0, 1, 0, 0, time.UTC)

	g.Next(entity.TicketTypeBug, day1)
	g.Next(entity.TicketTypeBug, day1)

	if got := g.Next(entity.TicketTypeBug, day2); got != "BUG-20260826-0001" {
		t.Errorf("rollover protocol = %q, want BUG-20260826-0001", got)
	}
}

func TestProtocolDayIsUTC(t *testing.T) {
	g := NewProtocolGenerator()

	// 23:00 in UTC-3 is already the next day in UTC.
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	local := time.Date(2026, 8, 25, 23, 0, 0, 0, saoPaulo)

	if got := g.Next(entity.TicketTypeBug, local); got != "BUG-20260826-0001" {
		t.Errorf("protocol = %q, want UTC day 20260826", got)
	}
}

func TestProtocolSeedResumesSequence(t *testing.T) {
	g := NewProtocolGenerator()
	g.Seed(entity.TicketTypeBug, "20260825", 41)

	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	if got := g.Next(entity.TicketTypeBug, now); got != "BUG-20260825-0042" {
		t.Errorf("seeded protocol = %q, want BUG-20260825-0042", got)
	}
}

func TestProtocolConcurrentNextIsUnique(t *testing.T) {
	g := NewProtocolGenerator()
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	const workers = 50
	protocols := make(chan string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			protocols <- g.Next(entity.TicketTypeBug, now)
		}()
	}
	wg.Wait()
	close(protocols)

	seen := make(map[string]bool, workers)
	for p := range protocols {
		if seen[p] {
			t.Fatalf("duplicate protocol %q under concurrent generation", p)
		}
		seen[p] = true
	}
	if len(seen) != workers {
		t.Errorf("distinct protocols = %d, want %d", len(seen), workers)
	}
}

func TestProtocolUnknownTypeUsesGenericCode(t *testing.T) {
	g := NewProtocolGenerator()
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	if got := g.Next(entity.TicketType("mystery"), now); got != "GEN-20260825-0001" {
		t.Errorf("protocol = %q, want GEN-20260825-0001", got)
	}
}

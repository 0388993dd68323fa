package ticket

import (
	"context"
	"errors"
	"testing"
	"time"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/repository/specification"

	"github.com/google/uuid"
)

// fakeTicketRepository keeps tickets in a slice and evaluates the
// specifications the manager actually uses by type.
type fakeTicketRepository struct {
	tickets []*entity.Ticket
}

func (r *fakeTicketRepository) Create(_ context.Context, ticket *entity.Ticket) error {
	r.tickets = append(r.tickets, ticket)
	return nil
}

func (r *fakeTicketRepository) Update(_ context.Context, ticket *entity.Ticket) error {
	for i, existing := range r.tickets {
		if existing.Id == ticket.Id {
			r.tickets[i] = ticket
			return nil
		}
	}
	return errors.New("ticket not found")
}

func (r *fakeTicketRepository) Delete(_ context.Context, id uuid.UUID) error {
	for i, existing := range r.tickets {
		if existing.Id == id {
			r.tickets = append(r.tickets[:i], r.tickets[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeTicketRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ticket, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeTicketRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Ticket, error) {
	var out []*entity.Ticket
	for _, t := range r.tickets {
		if matchesAll(t, specs) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func matchesAll(t *entity.Ticket, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByProtocol:
			if t.Protocol != s.Protocol {
				return false
			}
		case specification.BySessionID:
			if t.SessionId != s.SessionID {
				return false
			}
		case specification.ByStatusIn:
			found := false
			for _, status := range s.Statuses {
				if string(t.Status) == status {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.SLAExpired:
			if !t.SLADeadline.Before(s.Now) {
				return false
			}
		}
	}
	return true
}

var testDeadlines = SLADeadlines{
	Critical: 1 * time.Hour,
	High:     4 * time.Hour,
	Medium:   24 * time.Hour,
	Low:      72 * time.Hour,
}

func testTicketManager(repo *fakeTicketRepository, now time.Time) *Manager {
	m := NewManager(repo, NewProtocolGenerator(), testDeadlines, logger.NewNop())
	m.now = func() time.Time { return now }
	return m
}

func openParams(sessionId uuid.UUID) OpenParams {
	return OpenParams{
		CustomerId:       uuid.New(),
		SessionId:        sessionId,
		IssueDescription: "compra não reconhecida no cartão",
		Domain:           "cards",
		PrimaryTrigger:   entity.TriggerSecurityConcern,
		TriggerSet:       []entity.EscalationTrigger{entity.TriggerSecurityConcern},
		AssignedHandler:  "security_team",
	}
}

func TestOpenCreatesTicketWithSLADeadline(t *testing.T) {
	repo := &fakeTicketRepository{}
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	m := testTicketManager(repo, now)

	created, err := m.Open(context.Background(), openParams(uuid.New()))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if created.Type != entity.TicketTypeSecurity || created.Priority != entity.PriorityCritical {
		t.Errorf("classification = %s/%s, want security/CRITICAL", created.Type, created.Priority)
	}
	if created.Status != entity.TicketOpen {
		t.Errorf("status = %s, want open", created.Status)
	}
	if created.Protocol != "SEC-20260825-0001" {
		t.Errorf("protocol = %q, want SEC-20260825-0001", created.Protocol)
	}
	if want := now.Add(1 * time.Hour); !created.SLADeadline.Equal(want) {
		t.Errorf("deadline = %v, want %v (critical window)", created.SLADeadline, want)
	}
}

func TestOpenIsIdempotentPerSession(t *testing.T) {
	repo := &fakeTicketRepository{}
	m := testTicketManager(repo, time.Now())
	sessionId := uuid.New()

	first, err := m.Open(context.Background(), openParams(sessionId))
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	second, err := m.Open(context.Background(), openParams(sessionId))
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}

	if second.Protocol != first.Protocol {
		t.Errorf("second Open returned %q, want existing %q", second.Protocol, first.Protocol)
	}
	if len(repo.tickets) != 1 {
		t.Errorf("ticket count = %d, want 1", len(repo.tickets))
	}
}

func TestOpenAllowsNewTicketAfterResolution(t *testing.T) {
	repo := &fakeTicketRepository{}
	m := testTicketManager(repo, time.Now())
	sessionId := uuid.New()

	first, _ := m.Open(context.Background(), openParams(sessionId))
	if _, _, err := m.Resolve(context.Background(), first.Protocol, "resolved by security", nil); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	second, err := m.Open(context.Background(), openParams(sessionId))
	if err != nil {
		t.Fatalf("Open after resolve failed: %v", err)
	}
	if second.Protocol == first.Protocol {
		t.Error("a new issue cycle should open a new ticket")
	}
}

func TestAssign(t *testing.T) {
	repo := &fakeTicketRepository{}
	m := testTicketManager(repo, time.Now())

	created, _ := m.Open(context.Background(), openParams(uuid.New()))

	assigned, err := m.Assign(context.Background(), created.Protocol, "maria.santos")
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if assigned.Status != entity.TicketAssigned || assigned.AssignedHandler != "maria.santos" {
		t.Errorf("assigned = %s/%s, want assigned/maria.santos", assigned.Status, assigned.AssignedHandler)
	}
}

func TestAssignResolvedTicketFails(t *testing.T) {
	repo := &fakeTicketRepository{}
	m := testTicketManager(repo, time.Now())

	created, _ := m.Open(context.Background(), openParams(uuid.New()))
	if _, _, err := m.Resolve(context.Background(), created.Protocol, "done", nil); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	_, err := m.Assign(context.Background(), created.Protocol, "maria.santos")
	if !errors.Is(err, entity.ErrInvariantViolation) {
		t.Errorf("err = %v, want invariant violation", err)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	repo := &fakeTicketRepository{}
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	m := testTicketManager(repo, now)

	created, _ := m.Open(context.Background(), openParams(uuid.New()))

	resolved, changed, err := m.Resolve(context.Background(), created.Protocol, "refunded", nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !changed {
		t.Error("first resolve should report a change")
	}
	if resolved.Status != entity.TicketResolved || resolved.ResolvedAt == nil {
		t.Errorf("resolved = %+v, want resolved status with timestamp", resolved)
	}

	_, changed, err = m.Resolve(context.Background(), created.Protocol, "refunded again", nil)
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if changed {
		t.Error("second resolve of the same protocol must be a no-op")
	}
}

func TestResolveUnknownProtocol(t *testing.T) {
	m := testTicketManager(&fakeTicketRepository{}, time.Now())

	resolved, changed, err := m.Resolve(context.Background(), "BUG-20260825-9999", "n/a", nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved != nil || changed {
		t.Errorf("unknown protocol should return (nil, false), got (%+v, %v)", resolved, changed)
	}
}

func TestSweepSLA(t *testing.T) {
	repo := &fakeTicketRepository{}
	opened := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	m := testTicketManager(repo, opened)

	// A critical ticket (1h window) and a medium one (24h window).
	overdue, _ := m.Open(context.Background(), openParams(uuid.New()))
	onTime, _ := m.Open(context.Background(), OpenParams{
		CustomerId:       uuid.New(),
		SessionId:        uuid.New(),
		IssueDescription: "quero falar com alguém",
		Domain:           "cards",
		PrimaryTrigger:   entity.TriggerExplicitRequest,
		TriggerSet:       []entity.EscalationTrigger{entity.TriggerExplicitRequest},
		AssignedHandler:  "human_support",
	})

	// Two hours later: the critical ticket is past its deadline.
	m.now = func() time.Time { return opened.Add(2 * time.Hour) }

	breached, err := m.SweepSLA(context.Background())
	if err != nil {
		t.Fatalf("SweepSLA failed: %v", err)
	}
	if len(breached) != 1 || breached[0].Protocol != overdue.Protocol {
		t.Fatalf("breached = %+v, want only %s", breached, overdue.Protocol)
	}
	if breached[0].Status != entity.TicketSLABreach {
		t.Errorf("status = %s, want sla_breached", breached[0].Status)
	}

	found, _ := m.FindByProtocol(context.Background(), onTime.Protocol)
	if found.Status != entity.TicketOpen {
		t.Errorf("on-time ticket status = %s, want open", found.Status)
	}

	// A second sweep does not re-flag the same ticket.
	again, err := m.SweepSLA(context.Background())
	if err != nil {
		t.Fatalf("second SweepSLA failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second sweep = %+v, want empty", again)
	}
}

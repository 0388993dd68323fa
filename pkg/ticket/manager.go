// Ticket lifecycle: open -> assigned -> resolved -> closed, with an
// sla_breached flag state raised by the deadline sweeper. The SLA deadline is
// fixed at creation from the priority and never recomputed.

package ticket

import (
	"context"
	"time"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/repository/contract"
	"support-routing-be/internal/repository/specification"

	"github.com/google/uuid"
)

// SLADeadlines is the priority -> resolution window mapping.
type SLADeadlines struct {
	Critical time.Duration
	High     time.Duration
	Medium   time.Duration
	Low      time.Duration
}

func (d SLADeadlines) For(priority entity.TicketPriority) time.Duration {
	switch priority {
	case entity.PriorityCritical:
		return d.Critical
	case entity.PriorityHigh:
		return d.High
	case entity.PriorityMedium:
		return d.Medium
	default:
		return d.Low
	}
}

// OpenParams carries everything needed to open a ticket for a confirmed
// escalation.
type OpenParams struct {
	CustomerId       uuid.UUID
	SessionId        uuid.UUID
	IssueDescription string
	Domain           string
	PrimaryTrigger   entity.EscalationTrigger
	TriggerSet       []entity.EscalationTrigger
	AssignedHandler  string
}

type Manager struct {
	repo      contract.TicketRepository
	protocols *ProtocolGenerator
	deadlines SLADeadlines
	logger    logger.ILogger
	now       func() time.Time
}

func NewManager(repo contract.TicketRepository, protocols *ProtocolGenerator, deadlines SLADeadlines, log logger.ILogger) *Manager {
	return &Manager{
		repo:      repo,
		protocols: protocols,
		deadlines: deadlines,
		logger:    log,
		now:       time.Now,
	}
}

var activeStatuses = []string{
	string(entity.TicketOpen),
	string(entity.TicketAssigned),
	string(entity.TicketSLABreach),
}

// Open creates a ticket for an escalation. A session holds at most one active
// ticket: if one already exists, it is returned unchanged and no new ticket
// is created.
func (m *Manager) Open(ctx context.Context, params OpenParams) (*entity.Ticket, error) {
	existing, err := m.repo.FindOne(ctx,
		specification.BySessionID{SessionID: params.SessionId},
		specification.ByStatusIn{Statuses: activeStatuses},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		m.logger.Warn("Ticket", "Session already holds an active ticket", map[string]interface{}{
			"session_id": params.SessionId,
			"protocol":   existing.Protocol,
		})
		return existing, nil
	}

	now := m.now()
	ticketType, priority := Classify(params.PrimaryTrigger, params.Domain)

	created := &entity.Ticket{
		Id:               uuid.New(),
		Protocol:         m.protocols.Next(ticketType, now),
		CustomerId:       params.CustomerId,
		SessionId:        params.SessionId,
		IssueDescription: params.IssueDescription,
		Type:             ticketType,
		Priority:         priority,
		Status:           entity.TicketOpen,
		PrimaryTrigger:   params.PrimaryTrigger,
		TriggerSet:       params.TriggerSet,
		AssignedHandler:  params.AssignedHandler,
		CreatedAt:        now,
		SLADeadline:      now.Add(m.deadlines.For(priority)),
	}

	if err := m.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	m.logger.Info("Ticket", "Ticket opened", map[string]interface{}{
		"protocol": created.Protocol,
		"type":     created.Type,
		"priority": created.Priority,
		"handler":  created.AssignedHandler,
		"deadline": created.SLADeadline,
	})

	return created, nil
}

// Assign moves an open ticket to an operator. Assigning an already assigned
// ticket just updates the handler.
func (m *Manager) Assign(ctx context.Context, protocol, handler string) (*entity.Ticket, error) {
	found, err := m.repo.FindOne(ctx, specification.ByProtocol{Protocol: protocol})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}
	if !found.Active() {
		return nil, entity.InvariantViolation("ticket %s is %s, cannot assign", protocol, found.Status)
	}

	found.AssignedHandler = handler
	if found.Status == entity.TicketOpen {
		found.Status = entity.TicketAssigned
	}

	if err := m.repo.Update(ctx, found); err != nil {
		return nil, err
	}
	return found, nil
}

// Resolve closes out an active ticket with an outcome. It is idempotent: a
// second resolve of the same protocol returns the ticket as-is, so retried
// deliveries of the resolution event are safe.
func (m *Manager) Resolve(ctx context.Context, protocol, outcome string, satisfaction *int) (*entity.Ticket, bool, error) {
	found, err := m.repo.FindOne(ctx, specification.ByProtocol{Protocol: protocol})
	if err != nil {
		return nil, false, err
	}
	if found == nil {
		return nil, false, nil
	}
	if found.Status == entity.TicketResolved || found.Status == entity.TicketClosed {
		return found, false, nil
	}

	now := m.now()
	found.Status = entity.TicketResolved
	found.ResolutionOutcome = &outcome
	found.ResolvedAt = &now

	if err := m.repo.Update(ctx, found); err != nil {
		return nil, false, err
	}

	m.logger.Info("Ticket", "Ticket resolved", map[string]interface{}{
		"protocol":     protocol,
		"outcome":      outcome,
		"satisfaction": satisfaction,
		"open_for":     now.Sub(found.CreatedAt).String(),
	})

	return found, true, nil
}

// SweepSLA flags active tickets whose deadline has passed and returns the
// tickets flagged by this pass. Already breached tickets are not returned
// again.
func (m *Manager) SweepSLA(ctx context.Context) ([]*entity.Ticket, error) {
	expired, err := m.repo.FindAll(ctx,
		specification.ByStatusIn{Statuses: []string{string(entity.TicketOpen), string(entity.TicketAssigned)}},
		specification.SLAExpired{Now: m.now()},
	)
	if err != nil {
		return nil, err
	}

	breached := make([]*entity.Ticket, 0, len(expired))
	for _, t := range expired {
		t.Status = entity.TicketSLABreach
		if err := m.repo.Update(ctx, t); err != nil {
			m.logger.Error("Ticket", "Failed to flag SLA breach", map[string]interface{}{
				"protocol": t.Protocol,
				"error":    err.Error(),
			})
			continue
		}
		breached = append(breached, t)
	}

	if len(breached) > 0 {
		m.logger.Warn("Ticket", "SLA deadlines breached", map[string]interface{}{
			"count": len(breached),
		})
	}

	return breached, nil
}

// FindByProtocol looks a ticket up by its protocol number.
func (m *Manager) FindByProtocol(ctx context.Context, protocol string) (*entity.Ticket, error) {
	return m.repo.FindOne(ctx, specification.ByProtocol{Protocol: protocol})
}

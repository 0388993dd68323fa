package entity

import (
	"time"

	"github.com/google/uuid"
)

type TicketPriority string

const (
	PriorityCritical TicketPriority = "CRITICAL"
	PriorityHigh     TicketPriority = "HIGH"
	PriorityMedium   TicketPriority = "MEDIUM"
	PriorityLow      TicketPriority = "LOW"
)

type TicketStatus string

const (
	TicketOpen      TicketStatus = "open"
	TicketAssigned  TicketStatus = "assigned"
	TicketSLABreach TicketStatus = "sla_breached"
	TicketResolved  TicketStatus = "resolved"
	TicketClosed    TicketStatus = "closed"
)

type TicketType string

const (
	TicketTypeBug      TicketType = "bug"
	TicketTypeAccount  TicketType = "account"
	TicketTypeSecurity TicketType = "security"
	TicketTypeFeedback TicketType = "feedback"
)

// Ticket is one confirmed escalation.
// SLADeadline is fixed at creation from the priority and never recomputed.
type Ticket struct {
	Id                uuid.UUID
	Protocol          string // unique human-readable id
	CustomerId        uuid.UUID
	SessionId         uuid.UUID
	IssueDescription  string
	Type              TicketType
	Priority          TicketPriority
	Status            TicketStatus
	PrimaryTrigger    EscalationTrigger
	TriggerSet        []EscalationTrigger
	AssignedHandler   string
	ResolutionOutcome *string
	CreatedAt         time.Time
	SLADeadline       time.Time
	ResolvedAt        *time.Time
}

// Active reports whether the ticket still counts against its SLA.
func (t *Ticket) Active() bool {
	return t.Status == TicketOpen || t.Status == TicketAssigned || t.Status == TicketSLABreach
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// EscalationState is the per-issue escalation cycle state of a session.
type EscalationState string

const (
	EscalationNone      EscalationState = "none"
	EscalationPending   EscalationState = "pending"
	EscalationEscalated EscalationState = "escalated"
	EscalationResolved  EscalationState = "resolved"
)

// Session is the per-conversation mutable state. It is owned by exactly one
// processing lane at a time; see the memory session repository for locking.
//
// Frustration is issue-cumulative: FrustrationLevel and FailedAttemptCount
// reset on the resolved->none transition, InteractionCount never resets.
type Session struct {
	Id                 uuid.UUID
	CustomerId         uuid.UUID
	InteractionCount   int
	FrustrationLevel   int // 0..3 ordinal, only increases within an issue cycle
	FailedAttemptCount int
	EscalationState    EscalationState
	LastRoutedDomain   string
	ClarificationAsked bool   // one clarification round per issue, then best-effort
	ActiveProtocol     string // ticket protocol while EscalationState == escalated
	CreatedAt          time.Time
	LastActivityAt     time.Time
}

// Snapshot captures the session state used for routing/escalation decisions.
// It is embedded immutably into pattern records.
func (s *Session) Snapshot() ContextSnapshot {
	return ContextSnapshot{
		FrustrationLevel:   s.FrustrationLevel,
		FailedAttemptCount: s.FailedAttemptCount,
		InteractionCount:   s.InteractionCount,
		Domain:             s.LastRoutedDomain,
	}
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type PatternOutcome string

const (
	OutcomeSuccess PatternOutcome = "success"
	OutcomeFailure PatternOutcome = "failure"
)

// ContextSnapshot is the session state at decision time. It is the grouping
// key for learner aggregation: records with the same primary trigger and the
// same frustration level are considered similar contexts.
type ContextSnapshot struct {
	FrustrationLevel   int      `json:"frustration_level"`
	FailedAttemptCount int      `json:"failed_attempt_count"`
	InteractionCount   int      `json:"interaction_count"`
	Domain             string   `json:"domain"`
	KeywordSignature   []string `json:"keyword_signature,omitempty"`
}

// PatternRecord is one completed escalation/ticket outcome. Immutable once
// written; read only in aggregate by the recommendation query.
type PatternRecord struct {
	Id                uuid.UUID
	ContextSnapshot   ContextSnapshot
	PrimaryTrigger    EscalationTrigger
	TriggerSet        []EscalationTrigger
	TargetHandler     string
	Outcome           PatternOutcome
	ResolutionTime    time.Duration
	SatisfactionScore *int
	CreatedAt         time.Time
}

package dto

import (
	"time"

	"support-routing-be/internal/entity"

	"github.com/google/uuid"
)

// RecordPatternMessage is the in-process bus payload for one completed
// escalation outcome. Persisting pattern records never blocks the message
// hot path.
type RecordPatternMessage struct {
	RecordId          uuid.UUID                  `json:"record_id"`
	ContextSnapshot   entity.ContextSnapshot     `json:"context_snapshot"`
	PrimaryTrigger    entity.EscalationTrigger   `json:"primary_trigger"`
	TriggerSet        []entity.EscalationTrigger `json:"trigger_set"`
	TargetHandler     string                     `json:"target_handler"`
	Outcome           entity.PatternOutcome      `json:"outcome"`
	ResolutionTimeMs  int64                      `json:"resolution_time_ms"`
	SatisfactionScore *int                       `json:"satisfaction_score,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
}

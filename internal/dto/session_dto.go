package dto

import (
	"time"

	"github.com/google/uuid"
)

type SessionStateResponse struct {
	Id                 uuid.UUID `json:"id"`
	CustomerId         uuid.UUID `json:"customer_id"`
	InteractionCount   int       `json:"interaction_count"`
	FrustrationLevel   int       `json:"frustration_level"`
	FailedAttemptCount int       `json:"failed_attempt_count"`
	EscalationState    string    `json:"escalation_state"`
	LastRoutedDomain   string    `json:"last_routed_domain,omitempty"`
	ActiveProtocol     string    `json:"active_protocol,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	LastActivityAt     time.Time `json:"last_activity_at"`
}

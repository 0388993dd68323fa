package dto

import (
	"github.com/google/uuid"
)

// ProcessTurnRequest is one inbound customer message. SessionId may be zero
// on the first message of a conversation; the engine then opens a session.
type ProcessTurnRequest struct {
	SessionId  uuid.UUID `json:"session_id"`
	CustomerId uuid.UUID `json:"customer_id" validate:"required"`
	Message    string    `json:"message" validate:"required"`
}

type DomainCandidate struct {
	Domain     string  `json:"domain"`
	Confidence float64 `json:"confidence"`
}

type ProcessTurnResponse struct {
	SessionId             uuid.UUID         `json:"session_id"`
	Reply                 string            `json:"reply"`
	Domain                string            `json:"domain,omitempty"`
	Candidates            []DomainCandidate `json:"candidates,omitempty"`
	IsAmbiguous           bool              `json:"is_ambiguous"`
	ClarificationQuestion string            `json:"clarification_question,omitempty"`
	Escalated             bool              `json:"escalated"`
	Protocol              string            `json:"protocol,omitempty"`
	HandlerQueue          string            `json:"handler_queue,omitempty"`
	FrustrationLevel      int               `json:"frustration_level"`
	EscalationState       string            `json:"escalation_state"`
	KnowledgeChunks       []KnowledgeChunk  `json:"knowledge_chunks,omitempty"`
}

type KnowledgeChunk struct {
	Topic    string  `json:"topic"`
	Document string  `json:"document"`
	Score    float64 `json:"score"`
}

// ReportFailureRequest marks the bot's previous answer as not having solved
// the customer's problem, feeding the repeated-failures trigger.
type ReportFailureRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

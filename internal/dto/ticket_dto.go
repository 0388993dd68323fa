package dto

import (
	"time"

	"github.com/google/uuid"
)

type TicketResponse struct {
	Id                uuid.UUID  `json:"id"`
	Protocol          string     `json:"protocol"`
	CustomerId        uuid.UUID  `json:"customer_id"`
	SessionId         uuid.UUID  `json:"session_id"`
	IssueDescription  string     `json:"issue_description"`
	Type              string     `json:"type"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	PrimaryTrigger    string     `json:"primary_trigger"`
	TriggerSet        []string   `json:"trigger_set"`
	AssignedHandler   string     `json:"assigned_handler"`
	ResolutionOutcome *string    `json:"resolution_outcome,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	SLADeadline       time.Time  `json:"sla_deadline"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
}

type AssignTicketRequest struct {
	Handler string `json:"handler" validate:"required"`
}

type ResolveTicketRequest struct {
	Resolution        string `json:"resolution" validate:"required"`
	Successful        bool   `json:"successful"`
	SatisfactionScore *int   `json:"satisfaction_score" validate:"omitempty,min=1,max=5"`
}

type ListTicketsRequest struct {
	Status   string `query:"status"`
	Priority string `query:"priority"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

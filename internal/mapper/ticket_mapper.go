package mapper

import (
	"encoding/json"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/model"
)

type TicketMapper struct{}

func NewTicketMapper() *TicketMapper {
	return &TicketMapper{}
}

func (m *TicketMapper) ToEntity(t *model.Ticket) *entity.Ticket {
	if t == nil {
		return nil
	}

	var triggerSet []entity.EscalationTrigger
	if len(t.TriggerSet) > 0 {
		// Corrupt JSON here would mean a write-path bug; treat as empty set
		// rather than failing the read.
		_ = json.Unmarshal(t.TriggerSet, &triggerSet)
	}

	return &entity.Ticket{
		Id:                t.Id,
		Protocol:          t.Protocol,
		CustomerId:        t.CustomerId,
		SessionId:         t.SessionId,
		IssueDescription:  t.IssueDescription,
		Type:              entity.TicketType(t.Type),
		Priority:          entity.TicketPriority(t.Priority),
		Status:            entity.TicketStatus(t.Status),
		PrimaryTrigger:    entity.EscalationTrigger(t.PrimaryTrigger),
		TriggerSet:        triggerSet,
		AssignedHandler:   t.AssignedHandler,
		ResolutionOutcome: t.ResolutionOutcome,
		CreatedAt:         t.CreatedAt,
		SLADeadline:       t.SLADeadline,
		ResolvedAt:        t.ResolvedAt,
	}
}

func (m *TicketMapper) ToModel(t *entity.Ticket) *model.Ticket {
	if t == nil {
		return nil
	}

	triggerSet, _ := json.Marshal(t.TriggerSet)

	return &model.Ticket{
		Id:                t.Id,
		Protocol:          t.Protocol,
		CustomerId:        t.CustomerId,
		SessionId:         t.SessionId,
		IssueDescription:  t.IssueDescription,
		Type:              string(t.Type),
		Priority:          string(t.Priority),
		Status:            string(t.Status),
		PrimaryTrigger:    string(t.PrimaryTrigger),
		TriggerSet:        triggerSet,
		AssignedHandler:   t.AssignedHandler,
		ResolutionOutcome: t.ResolutionOutcome,
		CreatedAt:         t.CreatedAt,
		SLADeadline:       t.SLADeadline,
		ResolvedAt:        t.ResolvedAt,
	}
}

func (m *TicketMapper) ToEntities(models []*model.Ticket) []*entity.Ticket {
	entities := make([]*entity.Ticket, len(models))
	for i, t := range models {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

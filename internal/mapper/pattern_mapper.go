package mapper

import (
	"encoding/json"
	"time"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/model"
)

type PatternMapper struct{}

func NewPatternMapper() *PatternMapper {
	return &PatternMapper{}
}

func (m *PatternMapper) ToEntity(r *model.PatternRecord) *entity.PatternRecord {
	if r == nil {
		return nil
	}

	var snapshot entity.ContextSnapshot
	_ = json.Unmarshal(r.ContextSnapshot, &snapshot)

	var triggerSet []entity.EscalationTrigger
	if len(r.TriggerSet) > 0 {
		_ = json.Unmarshal(r.TriggerSet, &triggerSet)
	}

	return &entity.PatternRecord{
		Id:                r.Id,
		ContextSnapshot:   snapshot,
		PrimaryTrigger:    entity.EscalationTrigger(r.PrimaryTrigger),
		TriggerSet:        triggerSet,
		TargetHandler:     r.TargetHandler,
		Outcome:           entity.PatternOutcome(r.Outcome),
		ResolutionTime:    time.Duration(r.ResolutionTimeMs) * time.Millisecond,
		SatisfactionScore: r.SatisfactionScore,
		CreatedAt:         r.CreatedAt,
	}
}

func (m *PatternMapper) ToModel(r *entity.PatternRecord) *model.PatternRecord {
	if r == nil {
		return nil
	}

	snapshot, _ := json.Marshal(r.ContextSnapshot)
	triggerSet, _ := json.Marshal(r.TriggerSet)

	return &model.PatternRecord{
		Id:                r.Id,
		ContextSnapshot:   snapshot,
		PrimaryTrigger:    string(r.PrimaryTrigger),
		TriggerSet:        triggerSet,
		TargetHandler:     r.TargetHandler,
		Outcome:           string(r.Outcome),
		ResolutionTimeMs:  r.ResolutionTime.Milliseconds(),
		SatisfactionScore: r.SatisfactionScore,
		CreatedAt:         r.CreatedAt,
	}
}

func (m *PatternMapper) ToEntities(models []*model.PatternRecord) []*entity.PatternRecord {
	entities := make([]*entity.PatternRecord, len(models))
	for i, r := range models {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

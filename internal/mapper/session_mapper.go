package mapper

import (
	"support-routing-be/internal/entity"
	"support-routing-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	return &entity.Session{
		Id:                 s.Id,
		CustomerId:         s.CustomerId,
		InteractionCount:   s.InteractionCount,
		FrustrationLevel:   s.FrustrationLevel,
		FailedAttemptCount: s.FailedAttemptCount,
		EscalationState:    entity.EscalationState(s.EscalationState),
		LastRoutedDomain:   s.LastRoutedDomain,
		ClarificationAsked: s.ClarificationAsked,
		ActiveProtocol:     s.ActiveProtocol,
		CreatedAt:          s.CreatedAt,
		LastActivityAt:     s.LastActivityAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	return &model.Session{
		Id:                 s.Id,
		CustomerId:         s.CustomerId,
		InteractionCount:   s.InteractionCount,
		FrustrationLevel:   s.FrustrationLevel,
		FailedAttemptCount: s.FailedAttemptCount,
		EscalationState:    string(s.EscalationState),
		LastRoutedDomain:   s.LastRoutedDomain,
		ClarificationAsked: s.ClarificationAsked,
		ActiveProtocol:     s.ActiveProtocol,
		CreatedAt:          s.CreatedAt,
		LastActivityAt:     s.LastActivityAt,
	}
}

package escalation

import (
	"testing"
	"time"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/pkg/signal"

	"github.com/google/uuid"
)

type fakeRecommender struct {
	handler    string
	confidence float64
}

func (f fakeRecommender) RecommendHandler(entity.ContextSnapshot, entity.EscalationTrigger) (string, float64) {
	return f.handler, f.confidence
}

func testManager(rec Recommender) *Manager {
	return NewManager(Options{
		FailedAttemptLimit: 3,
		InteractionCeiling: 12,
		OverrideMinimum:    0.75,
	}, rec, logger.NewNop())
}

func newSession() *entity.Session {
	return &entity.Session{
		Id:              uuid.New(),
		CustomerId:      uuid.New(),
		EscalationState: entity.EscalationNone,
	}
}

func TestBeginTurnResetsIssueCycle(t *testing.T) {
	m := testManager(nil)
	now := time.Now()

	session := newSession()
	session.EscalationState = entity.EscalationResolved
	session.FrustrationLevel = 3
	session.FailedAttemptCount = 2
	session.InteractionCount = 7
	session.ActiveProtocol = "SEC-20260825-0001"

	m.BeginTurn(session, now)

	if session.EscalationState != entity.EscalationNone {
		t.Errorf("state = %s, want none", session.EscalationState)
	}
	if session.FrustrationLevel != 0 || session.FailedAttemptCount != 0 {
		t.Errorf("issue counters should reset, got frustration=%d failed=%d",
			session.FrustrationLevel, session.FailedAttemptCount)
	}
	if session.ActiveProtocol != "" {
		t.Errorf("active protocol should clear, got %q", session.ActiveProtocol)
	}
	// Interaction count is session-cumulative and survives the reset.
	if session.InteractionCount != 8 {
		t.Errorf("InteractionCount = %d, want 8", session.InteractionCount)
	}
	if !session.LastActivityAt.Equal(now) {
		t.Errorf("LastActivityAt = %v, want %v", session.LastActivityAt, now)
	}
}

func TestBeginTurnKeepsActiveIssueState(t *testing.T) {
	m := testManager(nil)

	session := newSession()
	session.EscalationState = entity.EscalationPending
	session.FrustrationLevel = 2

	m.BeginTurn(session, time.Now())

	if session.EscalationState != entity.EscalationPending {
		t.Errorf("pending state must survive a new turn, got %s", session.EscalationState)
	}
	if session.FrustrationLevel != 2 {
		t.Errorf("frustration must not reset mid-issue, got %d", session.FrustrationLevel)
	}
}

func TestApplyExtraction(t *testing.T) {
	tests := []struct {
		name    string
		current int
		ext     signal.Extraction
		want    int
	}{
		{"delta adds", 1, signal.Extraction{FrustrationDelta: 1}, 2},
		{"clamped at three", 2, signal.Extraction{FrustrationDelta: 5}, 3},
		{"force ceiling", 0, signal.Extraction{ForceCeiling: true}, 3},
		{"never decreases", 3, signal.Extraction{FrustrationDelta: 0}, 3},
	}

	m := testManager(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newSession()
			session.FrustrationLevel = tt.current

			m.ApplyExtraction(session, tt.ext)

			if session.FrustrationLevel != tt.want {
				t.Errorf("FrustrationLevel = %d, want %d", session.FrustrationLevel, tt.want)
			}
		})
	}
}

func TestEvaluateEscalates(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*entity.Session)
		ext         signal.Extraction
		vip         bool
		wantPrimary entity.EscalationTrigger
		wantHandler string
	}{
		{
			name:        "frustration ceiling",
			setup:       func(s *entity.Session) { s.FrustrationLevel = 3 },
			wantPrimary: entity.TriggerHighFrustration,
			wantHandler: "retention_team",
		},
		{
			name:        "explicit request",
			ext:         signal.Extraction{Triggers: []entity.EscalationTrigger{entity.TriggerExplicitRequest}},
			wantPrimary: entity.TriggerExplicitRequest,
			wantHandler: "human_support",
		},
		{
			name: "security outranks explicit request",
			ext: signal.Extraction{Triggers: []entity.EscalationTrigger{
				entity.TriggerExplicitRequest,
				entity.TriggerSecurityConcern,
			}},
			wantPrimary: entity.TriggerSecurityConcern,
			wantHandler: "security_team",
		},
		{
			name:        "repeated failures at limit",
			setup:       func(s *entity.Session) { s.FailedAttemptCount = 3 },
			wantPrimary: entity.TriggerRepeatedFailure,
			wantHandler: "senior_support",
		},
		{
			name:        "interaction ceiling exceeded",
			setup:       func(s *entity.Session) { s.InteractionCount = 13 },
			wantPrimary: entity.TriggerTimeout,
			wantHandler: "human_support",
		},
		{
			name:        "vip with a real trigger",
			ext:         signal.Extraction{Triggers: []entity.EscalationTrigger{entity.TriggerTechnicalBug}},
			vip:         true,
			wantPrimary: entity.TriggerTechnicalBug,
			wantHandler: "technical_support",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testManager(nil)
			session := newSession()
			if tt.setup != nil {
				tt.setup(session)
			}

			decision := m.Evaluate(session, tt.ext, tt.vip)

			if decision == nil {
				t.Fatal("expected an escalation decision")
			}
			if session.EscalationState != entity.EscalationEscalated {
				t.Errorf("state = %s, want escalated", session.EscalationState)
			}
			if decision.Primary != tt.wantPrimary {
				t.Errorf("Primary = %s, want %s", decision.Primary, tt.wantPrimary)
			}
			if decision.TargetHandler != tt.wantHandler {
				t.Errorf("TargetHandler = %s, want %s", decision.TargetHandler, tt.wantHandler)
			}
		})
	}
}

func TestEvaluateVipAloneNeverEscalates(t *testing.T) {
	m := testManager(nil)
	session := newSession()

	decision := m.Evaluate(session, signal.Extraction{}, true)

	if decision != nil {
		t.Fatalf("VIP status without a trigger must not escalate: %+v", decision)
	}
	if session.EscalationState != entity.EscalationNone {
		t.Errorf("state = %s, want none", session.EscalationState)
	}
}

func TestEvaluateVipEscalationCarriesVipTrigger(t *testing.T) {
	m := testManager(nil)
	session := newSession()

	decision := m.Evaluate(session, signal.Extraction{
		Triggers: []entity.EscalationTrigger{entity.TriggerTechnicalBug},
	}, true)

	if decision == nil {
		t.Fatal("expected an escalation decision")
	}
	if !entity.ContainsTrigger(decision.Triggers, entity.TriggerVipCustomer) {
		t.Errorf("trigger set should include VIP_CUSTOMER, got %v", decision.Triggers)
	}
}

func TestEvaluatePendingWithoutEscalation(t *testing.T) {
	m := testManager(nil)
	session := newSession()

	// A technical bug at low frustration is tracked but not escalated.
	decision := m.Evaluate(session, signal.Extraction{
		Triggers: []entity.EscalationTrigger{entity.TriggerTechnicalBug},
	}, false)

	if decision != nil {
		t.Fatalf("low-frustration bug must not escalate: %+v", decision)
	}
	if session.EscalationState != entity.EscalationPending {
		t.Errorf("state = %s, want pending", session.EscalationState)
	}
}

func TestEvaluateFrustrationOnlyMarksPending(t *testing.T) {
	m := testManager(nil)
	session := newSession()

	// A low-severity complaint raises frustration without firing any trigger.
	ext := signal.Extract("isso está muito lento, que demora", session)
	if len(ext.Triggers) != 0 {
		t.Fatalf("low-severity complaint should carry no triggers, got %v", ext.Triggers)
	}
	if ext.FrustrationDelta != 1 {
		t.Fatalf("FrustrationDelta = %d, want 1", ext.FrustrationDelta)
	}

	m.BeginTurn(session, time.Now())
	m.ApplyExtraction(session, ext)

	if decision := m.Evaluate(session, ext, false); decision != nil {
		t.Fatalf("frustration below the ceiling must not escalate: %+v", decision)
	}
	if session.EscalationState != entity.EscalationPending {
		t.Errorf("state = %s, want pending", session.EscalationState)
	}

	// Two more complaints of the same weight reach the ceiling.
	for i := 0; i < 2; i++ {
		m.BeginTurn(session, time.Now())
		m.ApplyExtraction(session, ext)
	}

	decision := m.Evaluate(session, ext, false)
	if decision == nil {
		t.Fatal("expected an escalation decision at the frustration ceiling")
	}
	if decision.Primary != entity.TriggerHighFrustration {
		t.Errorf("Primary = %s, want %s", decision.Primary, entity.TriggerHighFrustration)
	}
}

func TestEvaluateWhileEscalatedIsNil(t *testing.T) {
	m := testManager(nil)
	session := newSession()
	session.EscalationState = entity.EscalationEscalated
	session.FrustrationLevel = 3

	if decision := m.Evaluate(session, signal.Extraction{}, false); decision != nil {
		t.Fatalf("active escalation must not produce a second decision: %+v", decision)
	}
}

func TestSelectHandlerLearnerOverride(t *testing.T) {
	tests := []struct {
		name        string
		recommender Recommender
		wantHandler string
	}{
		{
			name:        "confident recommendation overrides",
			recommender: fakeRecommender{handler: "night_shift_team", confidence: 0.9},
			wantHandler: "night_shift_team",
		},
		{
			name:        "weak recommendation is ignored",
			recommender: fakeRecommender{handler: "night_shift_team", confidence: 0.5},
			wantHandler: "retention_team",
		},
		{
			name:        "no recommendation keeps static mapping",
			recommender: fakeRecommender{},
			wantHandler: "retention_team",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testManager(tt.recommender)
			session := newSession()
			session.FrustrationLevel = 3

			decision := m.Evaluate(session, signal.Extraction{}, false)

			if decision == nil {
				t.Fatal("expected an escalation decision")
			}
			if decision.TargetHandler != tt.wantHandler {
				t.Errorf("TargetHandler = %s, want %s", decision.TargetHandler, tt.wantHandler)
			}
		})
	}
}

func TestMarkResolved(t *testing.T) {
	m := testManager(nil)
	session := newSession()
	session.EscalationState = entity.EscalationEscalated

	m.MarkResolved(session)
	if session.EscalationState != entity.EscalationResolved {
		t.Errorf("state = %s, want resolved", session.EscalationState)
	}

	// Resolving a non-escalated session is a no-op.
	idle := newSession()
	m.MarkResolved(idle)
	if idle.EscalationState != entity.EscalationNone {
		t.Errorf("state = %s, want none", idle.EscalationState)
	}
}

func TestHandlerForTrigger(t *testing.T) {
	tests := []struct {
		trigger entity.EscalationTrigger
		want    string
	}{
		{entity.TriggerSecurityConcern, "security_team"},
		{entity.TriggerExplicitRequest, "human_support"},
		{entity.TriggerHighFrustration, "retention_team"},
		{entity.TriggerTechnicalBug, "technical_support"},
		{entity.TriggerRepeatedFailure, "senior_support"},
		{entity.TriggerTimeout, "human_support"},
		{entity.TriggerComplexIssue, "senior_support"},
		{entity.TriggerVipCustomer, "vip_concierge"},
		{entity.EscalationTrigger("UNKNOWN"), DefaultHandlerQueue},
	}

	for _, tt := range tests {
		if got := HandlerForTrigger(tt.trigger); got != tt.want {
			t.Errorf("HandlerForTrigger(%s) = %s, want %s", tt.trigger, got, tt.want)
		}
	}
}

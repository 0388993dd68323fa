// Per-session escalation state machine. States cycle per issue:
// none -> pending -> escalated -> resolved -> none. Frustration is
// issue-cumulative: it resets together with the failed-attempt counter on the
// resolved -> none transition, while interaction_count is session-cumulative
// and never resets.

package escalation

import (
	"time"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/pkg/signal"
)

// Decision is a confirmed escalation for one turn.
type Decision struct {
	Triggers      []entity.EscalationTrigger
	Primary       entity.EscalationTrigger
	TargetHandler string
	Snapshot      entity.ContextSnapshot
}

// Recommender is the learner's read side. A zero-confidence answer means "no
// recommendation" and must be treated as a no-op, never as an error.
type Recommender interface {
	RecommendHandler(snapshot entity.ContextSnapshot, primary entity.EscalationTrigger) (string, float64)
}

type Options struct {
	FailedAttemptLimit int
	InteractionCeiling int
	// OverrideMinimum is the learner confidence needed to override the
	// static trigger->handler mapping.
	OverrideMinimum float64
}

type Manager struct {
	opts        Options
	recommender Recommender
	logger      logger.ILogger
}

func NewManager(opts Options, recommender Recommender, log logger.ILogger) *Manager {
	return &Manager{
		opts:        opts,
		recommender: recommender,
		logger:      log,
	}
}

// BeginTurn applies the automatic resolved -> none transition and bumps the
// session counters for a new inbound message.
func (m *Manager) BeginTurn(session *entity.Session, now time.Time) {
	if session.EscalationState == entity.EscalationResolved {
		session.EscalationState = entity.EscalationNone
		session.FrustrationLevel = 0
		session.FailedAttemptCount = 0
		session.ActiveProtocol = ""
		m.logger.Debug("Escalation", "Issue cycle reset", map[string]interface{}{
			"session_id": session.Id,
		})
	}
	session.InteractionCount++
	session.LastActivityAt = now
}

// ApplyExtraction folds the message signals into the session. Frustration
// only increases within an issue cycle.
func (m *Manager) ApplyExtraction(session *entity.Session, ext signal.Extraction) {
	level := session.FrustrationLevel
	if ext.ForceCeiling {
		level = 3
	} else {
		level += ext.FrustrationDelta
	}
	if level > 3 {
		level = 3
	}
	if level > session.FrustrationLevel {
		session.FrustrationLevel = level
	}
}

// Evaluate runs the trigger set against the cumulative session state and
// performs the state transition. It returns a Decision only when the session
// moves to escalated on this turn; while a ticket is already active it
// returns nil (exactly one active ticket per session).
func (m *Manager) Evaluate(session *entity.Session, ext signal.Extraction, vip bool) *Decision {
	if session.EscalationState == entity.EscalationEscalated {
		return nil
	}

	triggers := make([]entity.EscalationTrigger, 0, len(ext.Triggers)+3)
	triggers = append(triggers, ext.Triggers...)

	if session.FrustrationLevel >= 3 {
		triggers = appendUnique(triggers, entity.TriggerHighFrustration)
	}
	if session.FailedAttemptCount >= m.opts.FailedAttemptLimit {
		triggers = appendUnique(triggers, entity.TriggerRepeatedFailure)
	}
	if session.InteractionCount > m.opts.InteractionCeiling {
		triggers = appendUnique(triggers, entity.TriggerTimeout)
	}
	if vip && hasNonTrivial(triggers) {
		triggers = appendUnique(triggers, entity.TriggerVipCustomer)
	}

	if len(triggers) == 0 {
		// Frustration accruing below the ceiling is already a close call:
		// the session moves to pending so the issue is tracked across turns
		// even though no lexical trigger fired yet.
		if session.FrustrationLevel > 0 && session.EscalationState == entity.EscalationNone {
			session.EscalationState = entity.EscalationPending
			m.logger.Debug("Escalation", "Session marked pending", map[string]interface{}{
				"session_id":        session.Id,
				"frustration_level": session.FrustrationLevel,
			})
		}
		return nil
	}

	if !m.shouldEscalate(session, triggers, vip) {
		// Close call: track it without creating a ticket.
		if session.EscalationState == entity.EscalationNone {
			session.EscalationState = entity.EscalationPending
			m.logger.Debug("Escalation", "Session marked pending", map[string]interface{}{
				"session_id": session.Id,
				"triggers":   triggers,
			})
		}
		return nil
	}

	session.EscalationState = entity.EscalationEscalated
	primary := entity.PrimaryTrigger(triggers)
	snapshot := session.Snapshot()

	decision := &Decision{
		Triggers:      triggers,
		Primary:       primary,
		TargetHandler: m.selectHandler(snapshot, primary),
		Snapshot:      snapshot,
	}

	m.logger.Info("Escalation", "Session escalated", map[string]interface{}{
		"session_id": session.Id,
		"primary":    primary,
		"triggers":   triggers,
		"handler":    decision.TargetHandler,
	})

	return decision
}

// MarkResolved applies the externally driven escalated -> resolved
// transition (ticket closure notification).
func (m *Manager) MarkResolved(session *entity.Session) {
	if session.EscalationState != entity.EscalationEscalated {
		return
	}
	session.EscalationState = entity.EscalationResolved
	m.logger.Info("Escalation", "Session resolved", map[string]interface{}{
		"session_id": session.Id,
		"protocol":   session.ActiveProtocol,
	})
}

func (m *Manager) shouldEscalate(session *entity.Session, triggers []entity.EscalationTrigger, vip bool) bool {
	if session.FrustrationLevel >= 3 {
		return true
	}
	if entity.ContainsTrigger(triggers, entity.TriggerExplicitRequest) {
		return true
	}
	if entity.ContainsTrigger(triggers, entity.TriggerSecurityConcern) {
		return true
	}
	if session.FailedAttemptCount >= m.opts.FailedAttemptLimit {
		return true
	}
	if session.InteractionCount > m.opts.InteractionCeiling {
		return true
	}
	if vip && hasNonTrivial(triggers) {
		return true
	}
	return false
}

// selectHandler maps the primary trigger to its static queue, letting a
// sufficiently confident learner recommendation override it.
func (m *Manager) selectHandler(snapshot entity.ContextSnapshot, primary entity.EscalationTrigger) string {
	handler := HandlerForTrigger(primary)

	if m.recommender != nil {
		recommended, confidence := m.recommender.RecommendHandler(snapshot, primary)
		if recommended != "" && confidence >= m.opts.OverrideMinimum {
			m.logger.Info("Escalation", "Learner override for handler", map[string]interface{}{
				"static":      handler,
				"recommended": recommended,
				"confidence":  confidence,
			})
			return recommended
		}
	}

	return handler
}

// hasNonTrivial reports whether any trigger besides VIP_CUSTOMER itself is
// present; VIP status alone never escalates.
func hasNonTrivial(triggers []entity.EscalationTrigger) bool {
	for _, t := range triggers {
		if t != entity.TriggerVipCustomer {
			return true
		}
	}
	return false
}

func appendUnique(triggers []entity.EscalationTrigger, t entity.EscalationTrigger) []entity.EscalationTrigger {
	if entity.ContainsTrigger(triggers, t) {
		return triggers
	}
	return append(triggers, t)
}

package escalation

import "support-routing-be/internal/entity"

// DefaultHandlerQueue receives escalations whose delivery exhausted retries
// or whose trigger has no mapping.
const DefaultHandlerQueue = "human_support"

// handlerQueues is the static primary-trigger -> handler queue mapping.
var handlerQueues = map[entity.EscalationTrigger]string{
	entity.TriggerSecurityConcern: "security_team",
	entity.TriggerExplicitRequest: "human_support",
	entity.TriggerHighFrustration: "retention_team",
	entity.TriggerTechnicalBug:    "technical_support",
	entity.TriggerRepeatedFailure: "senior_support",
	entity.TriggerTimeout:         "human_support",
	entity.TriggerComplexIssue:    "senior_support",
	entity.TriggerVipCustomer:     "vip_concierge",
}

// HandlerForTrigger returns the static queue for a primary trigger.
func HandlerForTrigger(primary entity.EscalationTrigger) string {
	if queue, ok := handlerQueues[primary]; ok {
		return queue
	}
	return DefaultHandlerQueue
}

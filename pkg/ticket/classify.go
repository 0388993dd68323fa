package ticket

import "support-routing-be/internal/entity"

// Classify derives the ticket type and priority from the primary trigger and
// the routed domain. Security concerns are always CRITICAL regardless of any
// other signal; the repository enforces the same invariant on write.
func Classify(primary entity.EscalationTrigger, domain string) (entity.TicketType, entity.TicketPriority) {
	ticketType := typeFor(primary, domain)

	if primary == entity.TriggerSecurityConcern {
		return ticketType, entity.PriorityCritical
	}

	switch primary {
	case entity.TriggerHighFrustration, entity.TriggerTechnicalBug,
		entity.TriggerRepeatedFailure, entity.TriggerVipCustomer:
		return ticketType, entity.PriorityHigh
	case entity.TriggerExplicitRequest, entity.TriggerTimeout, entity.TriggerComplexIssue:
		return ticketType, entity.PriorityMedium
	default:
		return ticketType, entity.PriorityLow
	}
}

func typeFor(primary entity.EscalationTrigger, domain string) entity.TicketType {
	if primary == entity.TriggerSecurityConcern {
		return entity.TicketTypeSecurity
	}
	if primary == entity.TriggerTechnicalBug || domain == "technical" {
		return entity.TicketTypeBug
	}
	if domain == "general_support" || domain == "" {
		return entity.TicketTypeFeedback
	}
	return entity.TicketTypeAccount
}

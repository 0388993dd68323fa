package entity

// EscalationTrigger is a named condition that can justify human escalation.
type EscalationTrigger string

const (
	TriggerHighFrustration EscalationTrigger = "HIGH_FRUSTRATION"
	TriggerExplicitRequest EscalationTrigger = "EXPLICIT_REQUEST"
	TriggerSecurityConcern EscalationTrigger = "SECURITY_CONCERN"
	TriggerTechnicalBug    EscalationTrigger = "TECHNICAL_BUG"
	TriggerRepeatedFailure EscalationTrigger = "REPEATED_FAILURES"
	TriggerTimeout         EscalationTrigger = "TIMEOUT"
	TriggerComplexIssue    EscalationTrigger = "COMPLEX_ISSUE"
	TriggerVipCustomer     EscalationTrigger = "VIP_CUSTOMER"
)

// triggerRank is the fixed severity order used to pick the primary trigger.
// Lower rank wins.
var triggerRank = map[EscalationTrigger]int{
	TriggerSecurityConcern: 0,
	TriggerExplicitRequest: 1,
	TriggerHighFrustration: 2,
	TriggerTechnicalBug:    3,
	TriggerRepeatedFailure: 4,
	TriggerTimeout:         5,
	TriggerComplexIssue:    6,
	TriggerVipCustomer:     7,
}

// PrimaryTrigger returns the highest-severity trigger of a non-empty set.
// Returns "" for an empty set.
func PrimaryTrigger(triggers []EscalationTrigger) EscalationTrigger {
	best := EscalationTrigger("")
	bestRank := len(triggerRank)
	for _, t := range triggers {
		if r, ok := triggerRank[t]; ok && r < bestRank {
			best = t
			bestRank = r
		}
	}
	return best
}

// ContainsTrigger reports whether the set includes the given trigger.
func ContainsTrigger(triggers []EscalationTrigger, t EscalationTrigger) bool {
	for _, candidate := range triggers {
		if candidate == t {
			return true
		}
	}
	return false
}

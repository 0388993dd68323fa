// Domain routing: scores each configured specialist domain against the
// message, normalizes to confidences, and either commits to the winner or
// flags the decision as ambiguous with a clarification question.

package routing

import (
	"sort"
	"strings"

	"support-routing-be/internal/pkg/logger"
)

// Candidate is one scored domain.
type Candidate struct {
	Domain     string  `json:"domain"`
	Confidence float64 `json:"confidence"`
}

// Decision is the routing outcome for one message.
// IsAmbiguous is true iff the top two confidences are closer than the
// ambiguity margin, or the top confidence is below the threshold.
type Decision struct {
	Candidates            []Candidate `json:"candidates"`
	ChosenDomain          string      `json:"chosen_domain,omitempty"`
	IsAmbiguous           bool        `json:"is_ambiguous"`
	ClarificationQuestion string      `json:"clarification_question,omitempty"`
	NeedsMoreInfo         bool        `json:"needs_more_info,omitempty"`
}

// Bias is an optional learned nudge from the pattern learner. Zero value is
// a no-op.
type Bias struct {
	Domain     string
	Confidence float64
}

type Options struct {
	Threshold       float64
	AmbiguityMargin float64
	ContinuityBonus float64
}

// Engine scores messages against an immutable rule table.
type Engine struct {
	rules  []DomainRule
	opts   Options
	logger logger.ILogger
}

func NewEngine(rules []DomainRule, opts Options, log logger.ILogger) *Engine {
	return &Engine{
		rules:  rules,
		opts:   opts,
		logger: log,
	}
}

// minMessageRunes guards the "needs more info" outcome for empty or
// near-empty messages.
const minMessageRunes = 4

// Route produces a Decision for one message.
//
// lastDomain is the session's previous routing target (continuity bonus);
// forceChoice commits to the best candidate even inside the ambiguity margin,
// used after one clarification round has already been spent.
func (e *Engine) Route(text string, keywords []string, lastDomain string, bias Bias, forceChoice bool) Decision {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minMessageRunes {
		return Decision{
			IsAmbiguous:           true,
			NeedsMoreInfo:         true,
			ClarificationQuestion: clarifyNeedMoreInfo,
		}
	}

	lower := strings.ToLower(trimmed)
	raw := make(map[string]float64, len(e.rules))
	total := 0.0

	for _, rule := range e.rules {
		score := e.scoreDomain(lower, keywords, rule)
		if rule.Domain == lastDomain && score > 0 {
			// Sticky routing: staying with the previous specialist beats
			// flapping between near-equal domains.
			score += e.opts.ContinuityBonus
		}
		raw[rule.Domain] = score
		total += score
	}

	// Learned bias only nudges: it is added before normalization so it can
	// break ties, but it can never outweigh a strong lexical match.
	if bias.Domain != "" && bias.Confidence > 0 {
		if _, ok := raw[bias.Domain]; ok {
			raw[bias.Domain] += bias.Confidence
			total += bias.Confidence
		}
	}

	if total == 0 {
		// No domain matched at all. One generic question is allowed; once the
		// clarification budget is spent the fallback domain takes the message,
		// otherwise a gibberish sender would be asked forever.
		if fallback := e.FallbackDomain(); fallback != "" && forceChoice {
			e.logger.Debug("Routing", "No lexical match, committing to fallback", map[string]interface{}{
				"domain": fallback,
			})
			return Decision{
				Candidates:   []Candidate{{Domain: fallback, Confidence: e.opts.Threshold}},
				ChosenDomain: fallback,
			}
		}
		return Decision{
			IsAmbiguous:           true,
			ClarificationQuestion: clarifyGeneric,
		}
	}

	candidates := make([]Candidate, 0, len(raw))
	for domain, score := range raw {
		if score <= 0 {
			continue
		}
		candidates = append(candidates, Candidate{Domain: domain, Confidence: score / total})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		// Deterministic order for equal scores.
		return candidates[i].Domain < candidates[j].Domain
	})

	decision := Decision{Candidates: candidates}
	top := candidates[0]

	ambiguous := top.Confidence < e.opts.Threshold
	if !ambiguous && len(candidates) > 1 {
		ambiguous = top.Confidence-candidates[1].Confidence < e.opts.AmbiguityMargin
	}

	if ambiguous && !forceChoice {
		decision.IsAmbiguous = true
		decision.ClarificationQuestion = e.clarify(candidates)
		e.logger.Debug("Routing", "Ambiguous decision", map[string]interface{}{
			"top":        top.Domain,
			"confidence": top.Confidence,
		})
		return decision
	}

	decision.ChosenDomain = top.Domain
	e.logger.Debug("Routing", "Domain chosen", map[string]interface{}{
		"domain":     top.Domain,
		"confidence": top.Confidence,
		"forced":     ambiguous && forceChoice,
	})
	return decision
}

func (e *Engine) scoreDomain(lower string, keywords []string, rule DomainRule) float64 {
	score := 0.0

	for _, kw := range rule.Keywords {
		if strings.Contains(lower, kw) {
			score += rule.KeywordWeight
		}
	}

	// Extracted keyword tokens count once more when they exactly match a
	// rule keyword; this rewards salient terms over incidental substrings.
	for _, token := range keywords {
		for _, kw := range rule.Keywords {
			if token == kw {
				score += rule.KeywordWeight * 0.5
				break
			}
		}
	}

	for _, pattern := range rule.Patterns {
		if pattern.MatchString(lower) {
			score += rule.PatternWeight
		}
	}

	return score
}

// FallbackDomain returns the configured fallback domain, or "" if none.
func (e *Engine) FallbackDomain() string {
	for _, rule := range e.rules {
		if rule.Fallback {
			return rule.Domain
		}
	}
	return ""
}

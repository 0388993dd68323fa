// Lexical signal extraction over inbound customer messages. Everything here
// is a pure function: same text + same session state always yields the same
// extraction, which is what makes the decision pipeline testable.

package signal

import (
	"strings"
	"unicode"

	"support-routing-be/internal/entity"
)

// Extraction is the normalized signal set derived from one raw message.
type Extraction struct {
	FrustrationDelta int // ordinal steps to add, before clamping to 0..3
	ForceCeiling     bool
	Triggers         []entity.EscalationTrigger
	KeywordHits      []string
}

const (
	capsRatioThreshold = 0.6
	capsMinLetters     = 8
	complexWordCount   = 60
	repeatedRunMinimum = 4 // "aaaa" counts, "aaa" does not
)

// Extract derives signals from a raw message. The session is read-only here;
// applying the frustration delta is the escalation manager's job.
func Extract(text string, session *entity.Session) Extraction {
	lower := strings.ToLower(text)

	ext := Extraction{}

	// Explicit handoff request short-circuits scoring: frustration goes to
	// the ceiling regardless of anything else in the message.
	for _, phrase := range explicitRequestPhrases {
		if strings.Contains(lower, phrase) {
			ext.ForceCeiling = true
			ext.Triggers = append(ext.Triggers, entity.TriggerExplicitRequest)
			break
		}
	}

	if containsAny(lower, securityTerms) {
		ext.Triggers = append(ext.Triggers, entity.TriggerSecurityConcern)
	}
	if containsAny(lower, technicalTerms) {
		ext.Triggers = append(ext.Triggers, entity.TriggerTechnicalBug)
	}

	// Weighted lexical score: high tier 2 points, medium 1, low ½.
	score := 0.0
	score += 2.0 * float64(countHits(lower, highSeverityTerms))
	score += 1.0 * float64(countHits(lower, mediumSeverityTerms))
	score += 0.5 * float64(countHits(lower, lowSeverityTerms))

	// Emotional markers.
	if capsRatio(text) >= capsRatioThreshold {
		score += 1.0
	}
	if hasRepeatedPunctuation(text) {
		score += 1.0
	}
	if hasRepeatedRun(lower) {
		score += 0.5
	}

	ext.FrustrationDelta = int(score)
	if ext.FrustrationDelta > 3 {
		ext.FrustrationDelta = 3
	}

	words := strings.Fields(lower)
	if len(words) > complexWordCount {
		ext.Triggers = append(ext.Triggers, entity.TriggerComplexIssue)
	}

	ext.KeywordHits = extractKeywords(words)

	return ext
}

// extractKeywords keeps meaningful tokens: length > 2, not a stop word.
func extractKeywords(words []string) []string {
	keywords := make([]string, 0)
	for _, word := range words {
		word = strings.Trim(word, ".,?!;:\"'()")
		if len([]rune(word)) > 2 && !stopWords[word] {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func countHits(lower string, terms []string) int {
	hits := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return hits
}

// capsRatio is uppercase letters over all letters. Messages with fewer than
// capsMinLetters letters never qualify (short acronyms are not shouting).
func capsRatio(text string) float64 {
	letters, uppers := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	if letters < capsMinLetters {
		return 0
	}
	return float64(uppers) / float64(letters)
}

func hasRepeatedPunctuation(text string) bool {
	return strings.Contains(text, "!!") || strings.Contains(text, "??") ||
		strings.Contains(text, "!?") || strings.Contains(text, "?!")
}

// hasRepeatedRun detects elongations like "heeeelp".
func hasRepeatedRun(lower string) bool {
	run := 1
	var prev rune
	for _, r := range lower {
		if !unicode.IsLetter(r) {
			run = 1
			prev = 0
			continue
		}
		if r == prev {
			run++
			if run >= repeatedRunMinimum {
				return true
			}
		} else {
			run = 1
		}
		prev = r
	}
	return false
}

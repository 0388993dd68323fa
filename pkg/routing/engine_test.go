package routing

import (
	"strings"
	"testing"

	"support-routing-be/internal/pkg/logger"
)

func testEngine() *Engine {
	return NewEngine(DefaultRules(), Options{
		Threshold:       0.35,
		AmbiguityMargin: 0.15,
		ContinuityBonus: 1.0,
	}, logger.NewNop())
}

func TestRouteClearWinner(t *testing.T) {
	e := testEngine()

	d := e.Route("perdi meu cartão de crédito, preciso bloquear", nil, "", Bias{}, false)

	if d.IsAmbiguous {
		t.Fatalf("decision should not be ambiguous: %+v", d)
	}
	if d.ChosenDomain != "cards" {
		t.Errorf("ChosenDomain = %q, want cards", d.ChosenDomain)
	}
	if len(d.Candidates) == 0 || d.Candidates[0].Domain != "cards" {
		t.Errorf("top candidate = %+v, want cards", d.Candidates)
	}
}

func TestRouteAmbiguousAsksOneQuestion(t *testing.T) {
	e := testEngine()

	// One keyword hit each for cards and digital_account: dead tie.
	d := e.Route("cartão e conta", nil, "", Bias{}, false)

	if !d.IsAmbiguous {
		t.Fatalf("tie should be ambiguous: %+v", d)
	}
	if d.ChosenDomain != "" {
		t.Errorf("ambiguous decision must not choose, got %q", d.ChosenDomain)
	}
	if d.ClarificationQuestion == "" {
		t.Error("ambiguous decision must carry a clarification question")
	}
	if !strings.Contains(d.ClarificationQuestion, "seu cartão") ||
		!strings.Contains(d.ClarificationQuestion, "sua conta digital") {
		t.Errorf("question should name both features, got %q", d.ClarificationQuestion)
	}
}

func TestRouteForceChoiceCommits(t *testing.T) {
	e := testEngine()

	// Same tie as above, but the clarification round is already spent.
	d := e.Route("cartão e conta", nil, "", Bias{}, true)

	if d.IsAmbiguous {
		t.Fatalf("forced choice should commit: %+v", d)
	}
	if d.ChosenDomain == "" {
		t.Error("forced choice must pick a domain")
	}
}

func TestRouteNeedsMoreInfo(t *testing.T) {
	e := testEngine()

	d := e.Route("oi", nil, "", Bias{}, false)

	if !d.NeedsMoreInfo {
		t.Fatalf("near-empty message should ask for more info: %+v", d)
	}
	if !d.IsAmbiguous || d.ClarificationQuestion == "" {
		t.Errorf("needs-more-info must be ambiguous with a question: %+v", d)
	}
}

func TestRouteNoMatchFallsBackToGenericQuestion(t *testing.T) {
	e := testEngine()

	d := e.Route("qwerty uiop zzzz", nil, "", Bias{}, false)

	if !d.IsAmbiguous {
		t.Fatalf("zero-score message should be ambiguous: %+v", d)
	}
	if d.NeedsMoreInfo {
		t.Error("long unmatched message is not a needs-more-info case")
	}
	if len(d.Candidates) != 0 {
		t.Errorf("no candidates expected, got %+v", d.Candidates)
	}
}

func TestRouteNoMatchForceChoiceCommitsToFallback(t *testing.T) {
	e := testEngine()

	// The clarification budget is spent; a still-unmatchable message must
	// land somewhere instead of looping on the generic question.
	d := e.Route("xyzzy plugh quux", nil, "", Bias{}, true)

	if d.ChosenDomain != "general_support" {
		t.Fatalf("ChosenDomain = %q, want general_support: %+v", d.ChosenDomain, d)
	}
	if d.IsAmbiguous {
		t.Error("forced fallback commit must not be flagged ambiguous")
	}
	if len(d.Candidates) != 1 || d.Candidates[0].Domain != "general_support" {
		t.Fatalf("Candidates = %+v, want the fallback only", d.Candidates)
	}
	if c := d.Candidates[0].Confidence; c > 0.35 {
		t.Errorf("fallback confidence = %v, want at most the routing threshold", c)
	}
}

func TestRouteContinuityBonusBreaksTie(t *testing.T) {
	e := testEngine()

	d := e.Route("cartão e conta", nil, "digital_account", Bias{}, false)

	if d.IsAmbiguous {
		t.Fatalf("continuity bonus should resolve the tie: %+v", d)
	}
	if d.ChosenDomain != "digital_account" {
		t.Errorf("ChosenDomain = %q, want digital_account (sticky)", d.ChosenDomain)
	}
}

func TestRouteLearnedBiasBreaksTie(t *testing.T) {
	e := testEngine()

	d := e.Route("cartão e conta", nil, "", Bias{Domain: "digital_account", Confidence: 0.5}, false)

	if d.IsAmbiguous {
		t.Fatalf("bias should resolve the tie: %+v", d)
	}
	if d.ChosenDomain != "digital_account" {
		t.Errorf("ChosenDomain = %q, want digital_account (biased)", d.ChosenDomain)
	}
}

func TestRouteBiasNeverOutweighsLexicalMatch(t *testing.T) {
	e := testEngine()

	// Strong cards evidence plus a capped bias toward loans.
	d := e.Route("bloquear cartão de crédito agora", nil, "", Bias{Domain: "loans", Confidence: 0.5}, false)

	if d.ChosenDomain != "cards" {
		t.Errorf("ChosenDomain = %q, want cards despite bias", d.ChosenDomain)
	}
}

func TestRouteConfidencesAreNormalized(t *testing.T) {
	e := testEngine()

	d := e.Route("cartão e conta e empréstimo", nil, "", Bias{}, false)

	sum := 0.0
	for _, c := range d.Candidates {
		if c.Confidence < 0 || c.Confidence > 1 {
			t.Errorf("confidence out of range: %+v", c)
		}
		sum += c.Confidence
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("confidences should sum to 1, got %f", sum)
	}
}

func TestFallbackDomain(t *testing.T) {
	e := testEngine()
	if got := e.FallbackDomain(); got != "general_support" {
		t.Errorf("FallbackDomain = %q, want general_support", got)
	}
}

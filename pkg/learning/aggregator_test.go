package learning

import (
	"context"
	"errors"
	"testing"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type fakePatternRepository struct {
	records []*entity.PatternRecord
	err     error
}

func (r *fakePatternRepository) Create(_ context.Context, record *entity.PatternRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *fakePatternRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.PatternRecord, error) {
	if r.err != nil {
		return nil, r.err
	}

	var out []*entity.PatternRecord
	for _, rec := range r.records {
		if matchesPattern(rec, specs) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakePatternRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func matchesPattern(rec *entity.PatternRecord, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByPrimaryTrigger:
			if string(rec.PrimaryTrigger) != s.Trigger {
				return false
			}
		case specification.ByFrustrationLevel:
			if rec.ContextSnapshot.FrustrationLevel != s.Level {
				return false
			}
		}
	}
	return true
}

func record(primary entity.EscalationTrigger, level int, handler string, outcome entity.PatternOutcome) *entity.PatternRecord {
	return &entity.PatternRecord{
		Id:              uuid.New(),
		ContextSnapshot: entity.ContextSnapshot{FrustrationLevel: level},
		PrimaryTrigger:  primary,
		TargetHandler:   handler,
		Outcome:         outcome,
	}
}

func snapshot(level int) entity.ContextSnapshot {
	return entity.ContextSnapshot{FrustrationLevel: level}
}

func TestRecommendHandlerNeedsMinimumSamples(t *testing.T) {
	repo := &fakePatternRepository{records: []*entity.PatternRecord{
		record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeSuccess),
		record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeSuccess),
	}}
	a := NewAggregator(repo, 3, logger.NewNop())

	handler, confidence := a.RecommendHandler(snapshot(3), entity.TriggerHighFrustration)

	if handler != "" || confidence != 0 {
		t.Errorf("two samples should yield no recommendation, got (%q, %f)", handler, confidence)
	}
}

func TestRecommendHandlerConfidenceDiscountsSmallGroups(t *testing.T) {
	// Four records, three successes: confidence = 0.75 * (4/10) = 0.3.
	repo := &fakePatternRepository{records: []*entity.PatternRecord{
		record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeSuccess),
		record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeSuccess),
		record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeSuccess),
		record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeFailure),
	}}
	a := NewAggregator(repo, 3, logger.NewNop())

	handler, confidence := a.RecommendHandler(snapshot(3), entity.TriggerHighFrustration)

	if handler != "retention_team" {
		t.Errorf("handler = %q, want retention_team", handler)
	}
	if confidence < 0.299 || confidence > 0.301 {
		t.Errorf("confidence = %f, want 0.3", confidence)
	}
}

func TestRecommendHandlerSaturatedGroup(t *testing.T) {
	// Ten successes out of ten: confidence saturates at 1.0.
	repo := &fakePatternRepository{}
	for i := 0; i < 10; i++ {
		repo.records = append(repo.records,
			record(entity.TriggerSecurityConcern, 2, "security_team", entity.OutcomeSuccess))
	}
	a := NewAggregator(repo, 3, logger.NewNop())

	handler, confidence := a.RecommendHandler(snapshot(2), entity.TriggerSecurityConcern)

	if handler != "security_team" {
		t.Errorf("handler = %q, want security_team", handler)
	}
	if confidence < 0.999 {
		t.Errorf("confidence = %f, want 1.0", confidence)
	}
}

func TestRecommendHandlerPicksBestOfCompetingHandlers(t *testing.T) {
	repo := &fakePatternRepository{}
	for i := 0; i < 10; i++ {
		repo.records = append(repo.records,
			record(entity.TriggerTechnicalBug, 1, "technical_support", entity.OutcomeSuccess))
	}
	for i := 0; i < 10; i++ {
		outcome := entity.OutcomeFailure
		if i < 3 {
			outcome = entity.OutcomeSuccess
		}
		repo.records = append(repo.records,
			record(entity.TriggerTechnicalBug, 1, "senior_support", outcome))
	}
	a := NewAggregator(repo, 3, logger.NewNop())

	handler, _ := a.RecommendHandler(snapshot(1), entity.TriggerTechnicalBug)

	if handler != "technical_support" {
		t.Errorf("handler = %q, want technical_support", handler)
	}
}

func TestRecommendHandlerGroupsByFrustrationLevel(t *testing.T) {
	// All evidence sits at level 3; a level-1 snapshot is a different context.
	repo := &fakePatternRepository{}
	for i := 0; i < 5; i++ {
		repo.records = append(repo.records,
			record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeSuccess))
	}
	a := NewAggregator(repo, 3, logger.NewNop())

	handler, _ := a.RecommendHandler(snapshot(1), entity.TriggerHighFrustration)

	if handler != "" {
		t.Errorf("cross-level recommendation = %q, want none", handler)
	}
}

func TestRecommendHandlerDegradesOnRepositoryError(t *testing.T) {
	repo := &fakePatternRepository{err: errors.New("connection refused")}
	a := NewAggregator(repo, 3, logger.NewNop())

	handler, confidence := a.RecommendHandler(snapshot(3), entity.TriggerHighFrustration)

	if handler != "" || confidence != 0 {
		t.Errorf("repository failure must degrade to no recommendation, got (%q, %f)", handler, confidence)
	}
}

func TestRecommendHandlerCachesUntilInvalidated(t *testing.T) {
	repo := &fakePatternRepository{records: []*entity.PatternRecord{
		record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeSuccess),
		record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeSuccess),
		record(entity.TriggerHighFrustration, 3, "retention_team", entity.OutcomeSuccess),
	}}
	a := NewAggregator(repo, 3, logger.NewNop())

	first, _ := a.RecommendHandler(snapshot(3), entity.TriggerHighFrustration)
	if first != "retention_team" {
		t.Fatalf("handler = %q, want retention_team", first)
	}

	// New evidence lands but the aggregate is still cached.
	for i := 0; i < 20; i++ {
		repo.records = append(repo.records,
			record(entity.TriggerHighFrustration, 3, "senior_support", entity.OutcomeSuccess))
	}

	cached, _ := a.RecommendHandler(snapshot(3), entity.TriggerHighFrustration)
	if cached != "retention_team" {
		t.Errorf("cached handler = %q, want retention_team", cached)
	}

	a.Invalidate()

	fresh, _ := a.RecommendHandler(snapshot(3), entity.TriggerHighFrustration)
	if fresh != "senior_support" {
		t.Errorf("post-invalidation handler = %q, want senior_support", fresh)
	}
}

func TestDomainBias(t *testing.T) {
	repo := &fakePatternRepository{}
	for i := 0; i < 4; i++ {
		rec := record(entity.TriggerTechnicalBug, 2, "technical_support", entity.OutcomeSuccess)
		rec.ContextSnapshot.Domain = "technical"
		rec.ContextSnapshot.KeywordSignature = []string{"aplicativo", "travou", "login"}
		repo.records = append(repo.records, rec)
	}
	a := NewAggregator(repo, 3, logger.NewNop())

	bias := a.DomainBias([]string{"aplicativo", "travou", "login"})

	if bias.Domain != "technical" {
		t.Errorf("bias domain = %q, want technical", bias.Domain)
	}
	if bias.Confidence <= 0 || bias.Confidence > 0.5 {
		t.Errorf("bias confidence = %f, want within (0, 0.5]", bias.Confidence)
	}
}

func TestDomainBiasZeroCases(t *testing.T) {
	repo := &fakePatternRepository{}
	rec := record(entity.TriggerTechnicalBug, 2, "technical_support", entity.OutcomeSuccess)
	rec.ContextSnapshot.Domain = "technical"
	rec.ContextSnapshot.KeywordSignature = []string{"aplicativo"}
	repo.records = append(repo.records, rec)

	a := NewAggregator(repo, 3, logger.NewNop())

	if bias := a.DomainBias(nil); bias.Domain != "" || bias.Confidence != 0 {
		t.Errorf("no keywords should yield zero bias, got %+v", bias)
	}

	// One matching record is below the sample minimum.
	if bias := a.DomainBias([]string{"aplicativo"}); bias.Domain != "" {
		t.Errorf("single sample should yield zero bias, got %+v", bias)
	}

	// No keyword overlap at all.
	if bias := a.DomainBias([]string{"fatura", "anuidade"}); bias.Domain != "" {
		t.Errorf("no overlap should yield zero bias, got %+v", bias)
	}
}

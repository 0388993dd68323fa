// Pattern aggregation. Records group by (primary trigger, frustration level);
// a handler recommendation is emitted only once a group holds enough samples,
// with confidence = success_rate * min(1, n/10). The aggregator is advisory:
// every failure path degrades to "no recommendation".

package learning

import (
	"context"
	"fmt"
	"time"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/repository/contract"
	"support-routing-be/internal/repository/specification"
	"support-routing-be/pkg/routing"

	gocache "github.com/patrickmn/go-cache"
)

const (
	cacheTTL     = 5 * time.Minute
	queryTimeout = 2 * time.Second
	// saturationSamples is the group size at which confidence stops being
	// discounted for sample count.
	saturationSamples = 10
	// maxDomainBias caps the learned routing nudge so it can break ties but
	// never outweigh a lexical match.
	maxDomainBias = 0.5
	recentWindow  = 500
)

type Aggregator struct {
	repo       contract.PatternRecordRepository
	cache      *gocache.Cache
	minSamples int
	logger     logger.ILogger
}

func NewAggregator(repo contract.PatternRecordRepository, minSamples int, log logger.ILogger) *Aggregator {
	return &Aggregator{
		repo:       repo,
		cache:      gocache.New(cacheTTL, 10*time.Minute),
		minSamples: minSamples,
		logger:     log,
	}
}

type handlerStats struct {
	total     int
	successes int
}

// RecommendHandler returns the best-performing handler for contexts similar
// to the snapshot, with its confidence. ("", 0) means no recommendation.
func (a *Aggregator) RecommendHandler(snapshot entity.ContextSnapshot, primary entity.EscalationTrigger) (string, float64) {
	if primary == "" {
		return "", 0
	}

	key := fmt.Sprintf("handler:%s:%d", primary, snapshot.FrustrationLevel)
	if cached, found := a.cache.Get(key); found {
		rec := cached.(recommendation)
		return rec.Handler, rec.Confidence
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	records, err := a.repo.FindAll(ctx,
		specification.ByPrimaryTrigger{Trigger: string(primary)},
		specification.ByFrustrationLevel{Level: snapshot.FrustrationLevel},
	)
	if err != nil {
		a.logger.Warn("Learning", "Pattern query failed, skipping recommendation", map[string]interface{}{
			"primary": primary,
			"error":   err.Error(),
		})
		return "", 0
	}

	rec := a.aggregate(records)
	a.cache.Set(key, rec, gocache.DefaultExpiration)
	return rec.Handler, rec.Confidence
}

type recommendation struct {
	Handler    string
	Confidence float64
}

func (a *Aggregator) aggregate(records []*entity.PatternRecord) recommendation {
	byHandler := make(map[string]*handlerStats)
	for _, r := range records {
		stats, ok := byHandler[r.TargetHandler]
		if !ok {
			stats = &handlerStats{}
			byHandler[r.TargetHandler] = stats
		}
		stats.total++
		if r.Outcome == entity.OutcomeSuccess {
			stats.successes++
		}
	}

	best := recommendation{}
	for handler, stats := range byHandler {
		if stats.total < a.minSamples {
			continue
		}
		volume := float64(stats.total) / saturationSamples
		if volume > 1 {
			volume = 1
		}
		confidence := float64(stats.successes) / float64(stats.total) * volume
		if confidence > best.Confidence {
			best = recommendation{Handler: handler, Confidence: confidence}
		}
	}

	return best
}

// DomainBias derives a routing nudge from keyword signatures of recent
// successful escalations. The zero Bias is returned when nothing applies.
func (a *Aggregator) DomainBias(keywords []string) routing.Bias {
	if len(keywords) == 0 {
		return routing.Bias{}
	}

	records := a.recentSuccesses()
	if len(records) == 0 {
		return routing.Bias{}
	}

	keywordSet := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		keywordSet[kw] = struct{}{}
	}

	scores := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		if r.ContextSnapshot.Domain == "" {
			continue
		}
		overlap := 0
		for _, sig := range r.ContextSnapshot.KeywordSignature {
			if _, ok := keywordSet[sig]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		scores[r.ContextSnapshot.Domain] += float64(overlap) / float64(len(keywords))
		counts[r.ContextSnapshot.Domain]++
	}

	bestDomain := ""
	bestScore := 0.0
	for domain, score := range scores {
		if counts[domain] < a.minSamples {
			continue
		}
		avg := score / float64(counts[domain])
		if avg > bestScore {
			bestDomain = domain
			bestScore = avg
		}
	}

	if bestDomain == "" {
		return routing.Bias{}
	}

	confidence := bestScore * maxDomainBias
	if confidence > maxDomainBias {
		confidence = maxDomainBias
	}
	return routing.Bias{Domain: bestDomain, Confidence: confidence}
}

func (a *Aggregator) recentSuccesses() []*entity.PatternRecord {
	const key = "records:recent_successes"
	if cached, found := a.cache.Get(key); found {
		return cached.([]*entity.PatternRecord)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	records, err := a.repo.FindAll(ctx,
		specification.OrderBy{Column: "created_at", Desc: true},
		specification.Limit{Limit: recentWindow},
	)
	if err != nil {
		a.logger.Warn("Learning", "Recent pattern query failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	successes := make([]*entity.PatternRecord, 0, len(records))
	for _, r := range records {
		if r.Outcome == entity.OutcomeSuccess {
			successes = append(successes, r)
		}
	}

	a.cache.Set(key, successes, gocache.DefaultExpiration)
	return successes
}

// Invalidate drops cached aggregates after new records land.
func (a *Aggregator) Invalidate() {
	a.cache.Flush()
}

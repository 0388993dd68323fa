package contract

import (
	"context"

	"support-routing-be/internal/entity"
)

// KnowledgeChunkRepository exposes vector search over the knowledge corpus.
// The domain argument is mandatory: it is the isolation boundary between
// specialist corpora.
type KnowledgeChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	SearchSimilar(ctx context.Context, domain string, topics []string, embedding []float32, limit int) ([]*entity.KnowledgeChunk, error)
}

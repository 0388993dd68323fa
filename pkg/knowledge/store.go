package knowledge

import (
	"context"
	"time"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/repository/contract"
	"support-routing-be/pkg/embedding"

	"github.com/google/uuid"
)

// Store is the retrieval client over the embedded knowledge corpus.
// Retrieval is strictly best-effort: any failure or timeout degrades to an
// empty result set so the turn can fall back to a generic response.
type Store struct {
	repo     contract.KnowledgeChunkRepository
	provider embedding.EmbeddingProvider
	timeout  time.Duration
	topK     int
	logger   logger.ILogger
}

func NewStore(repo contract.KnowledgeChunkRepository, provider embedding.EmbeddingProvider, timeout time.Duration, topK int, log logger.ILogger) *Store {
	return &Store{
		repo:     repo,
		provider: provider,
		timeout:  timeout,
		topK:     topK,
		logger:   log,
	}
}

// Search retrieves the chunks most similar to the message within the routed
// domain. A nil result means "answer without retrieval", never an error.
func (s *Store) Search(ctx context.Context, domain, text string) []*entity.KnowledgeChunk {
	if domain == "" {
		return nil
	}

	filter := BuildFilter(domain, text)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.provider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		s.logger.Warn("Knowledge", "Embedding failed, degrading to no retrieval", map[string]interface{}{
			"domain": domain,
			"error":  err.Error(),
		})
		return nil
	}

	chunks, err := s.repo.SearchSimilar(ctx, filter.Domain, filter.Topics, res.Embedding.Values, s.topK)
	if err != nil {
		s.logger.Warn("Knowledge", "Vector search failed, degrading to no retrieval", map[string]interface{}{
			"domain": domain,
			"error":  err.Error(),
		})
		return nil
	}

	// Topic narrowing may be too aggressive; retry on the domain alone.
	if len(chunks) == 0 && len(filter.Topics) > 0 {
		chunks, err = s.repo.SearchSimilar(ctx, filter.Domain, nil, res.Embedding.Values, s.topK)
		if err != nil {
			return nil
		}
	}

	return chunks
}

// Ingest embeds documents and stores them under a domain and topic.
func (s *Store) Ingest(ctx context.Context, domain, topic string, documents []string) error {
	chunks := make([]*entity.KnowledgeChunk, 0, len(documents))
	now := time.Now()

	for _, doc := range documents {
		res, err := s.provider.Generate(doc, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return err
		}
		chunks = append(chunks, &entity.KnowledgeChunk{
			Id:             uuid.New(),
			Domain:         domain,
			Topic:          topic,
			Document:       doc,
			EmbeddingValue: res.Embedding.Values,
			CreatedAt:      now,
		})
	}

	if len(chunks) == 0 {
		return nil
	}
	return s.repo.CreateBulk(ctx, chunks)
}

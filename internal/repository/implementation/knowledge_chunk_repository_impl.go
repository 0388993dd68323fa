package implementation

import (
	"context"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/model"
	"support-routing-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeChunkRepositoryImpl struct {
	db *gorm.DB
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{db: db}
}

func (r *KnowledgeChunkRepositoryImpl) toEntity(m *model.KnowledgeChunk) *entity.KnowledgeChunk {
	return &entity.KnowledgeChunk{
		Id:             m.Id,
		Domain:         m.Domain,
		Topic:          m.Topic,
		Document:       m.Document,
		EmbeddingValue: m.EmbeddingValue.Slice(),
		CreatedAt:      m.CreatedAt,
	}
}

func (r *KnowledgeChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, c := range chunks {
		models[i] = &model.KnowledgeChunk{
			Id:             c.Id,
			Domain:         c.Domain,
			Topic:          c.Topic,
			Document:       c.Document,
			EmbeddingValue: pgvector.NewVector(c.EmbeddingValue),
			CreatedAt:      c.CreatedAt,
		}
	}
	return r.db.WithContext(ctx).Create(models).Error
}

// SearchSimilar runs a cosine-distance search restricted to one domain.
// The domain predicate is applied before the vector ordering so a specialist
// can never receive another domain's documents.
func (r *KnowledgeChunkRepositoryImpl) SearchSimilar(ctx context.Context, domain string, topics []string, embedding []float32, limit int) ([]*entity.KnowledgeChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so the score
	// column is 1 - (embedding_value <=> query_vector).
	type result struct {
		model.KnowledgeChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("domain = ?", domain).
		Where("deleted_at IS NULL")

	if len(topics) > 0 {
		query = query.Where("topic IN ?", topics)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.KnowledgeChunk, len(results))
	for i, res := range results {
		e := r.toEntity(&res.KnowledgeChunk)
		e.Score = res.Similarity
		entities[i] = e
	}
	return entities, nil
}

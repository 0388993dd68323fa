package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeChunk is one embedded document fragment in the knowledge corpus.
// Domain is the hard isolation boundary: searches never cross it.
type KnowledgeChunk struct {
	Id             uuid.UUID
	Domain         string
	Topic          string
	Document       string
	EmbeddingValue []float32
	Score          float64 // similarity, populated on search results only
	CreatedAt      time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id             uuid.UUID
	Collection     string
	ChunkIndex     int
	Document       string
	Metadata       map[string]any
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// ScoredChunk is a retrieved chunk with its cosine similarity to the query
type ScoredChunk struct {
	Chunk      *DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

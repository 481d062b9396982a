package contract

import (
	"context"

	"urban-assistant-be/internal/entity"
)

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	CountByCollection(ctx context.Context, collection string) (int64, error)
	// SearchSimilarWithScore returns the limit closest chunks of a collection, most similar first
	SearchSimilarWithScore(ctx context.Context, collection string, embedding []float32, limit int) ([]*entity.ScoredChunk, error)
}

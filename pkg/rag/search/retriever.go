package search

import (
	"context"
	"fmt"
	"time"

	"urban-assistant-be/internal/metrics"
	"urban-assistant-be/internal/repository/contract"
	"urban-assistant-be/pkg/embedding"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("urban-assistant/rag")

// Chunk is one retrieved document passage
type Chunk struct {
	Text     string
	Score    float64
	Metadata map[string]any
}

// Retriever returns the k chunks of a collection most relevant to query,
// most relevant first
type Retriever interface {
	Retrieve(ctx context.Context, query, collection string, k int) ([]Chunk, error)
}

// VectorRetriever embeds the query and searches pgvector
type VectorRetriever struct {
	embedder embedding.EmbeddingProvider
	chunks   contract.DocumentChunkRepository
}

func NewVectorRetriever(embedder embedding.EmbeddingProvider, chunks contract.DocumentChunkRepository) *VectorRetriever {
	return &VectorRetriever{embedder: embedder, chunks: chunks}
}

func (r *VectorRetriever) Retrieve(ctx context.Context, query, collection string, k int) ([]Chunk, error) {
	ctx, span := tracer.Start(ctx, "rag.retrieve")
	defer span.End()
	span.SetAttributes(attribute.String("collection", collection), attribute.Int("k", k))

	start := time.Now()
	defer func() {
		metrics.StageLatency.WithLabelValues("retrieve").Observe(time.Since(start).Seconds())
	}()

	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := r.chunks.SearchSimilarWithScore(ctx, collection, vec, k)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}

	out := make([]Chunk, 0, len(scored))
	for _, s := range scored {
		if s == nil || s.Chunk == nil {
			continue
		}
		out = append(out, Chunk{
			Text:     s.Chunk.Document,
			Score:    s.Similarity,
			Metadata: s.Chunk.Metadata,
		})
	}
	span.SetAttributes(attribute.Int("retrieved", len(out)))
	return out, nil
}

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"urban-assistant-be/internal/constant"
	"urban-assistant-be/internal/metrics"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/llm"
	"urban-assistant-be/pkg/rag/search"
)

// StrategyPipeline answers from passages of the city development strategy
type StrategyPipeline struct {
	retriever  search.Retriever
	answerer   llm.LLMProvider
	logger     logger.ILogger
	collection string
	chunkNum   int
	answerOpts []llm.Option
}

func NewStrategyPipeline(retriever search.Retriever, answerer llm.LLMProvider, log logger.ILogger, collection string, chunkNum int, opts ...llm.Option) *StrategyPipeline {
	if collection == "" {
		collection = constant.DefaultStrategyCollection
	}
	if chunkNum <= 0 {
		chunkNum = constant.DefaultStrategyChunkNum
	}
	return &StrategyPipeline{
		retriever:  retriever,
		answerer:   answerer,
		logger:     log,
		collection: collection,
		chunkNum:   chunkNum,
		answerOpts: opts,
	}
}

// FormatContext numbers passages from zero in retrieval order
func FormatContext(chunks []search.Chunk) string {
	var sb strings.Builder
	for i, c := range chunks {
		fmt.Fprintf(&sb, constant.StrategyChunkFormat, i, c.Text)
	}
	return sb.String()
}

// Execute retrieves chunkNum passages, or the configured default when chunkNum <= 0
func (p *StrategyPipeline) Execute(ctx context.Context, question string, chunkNum int) (*Result, error) {
	ctx, span := tracer.Start(ctx, "pipeline.strategy")
	defer span.End()

	if chunkNum <= 0 {
		chunkNum = p.chunkNum
	}
	log := logger.Ctx(ctx, p.logger)

	chunks, err := p.retriever.Retrieve(ctx, question, p.collection, chunkNum)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("strategy retrieval: %w", err)
	}

	contextList := make([]string, len(chunks))
	for i, c := range chunks {
		contextList[i] = c.Text
		log.Info("Strategy", logger.MsgChunkMetadata, map[string]interface{}{
			"index":    i,
			"score":    c.Score,
			"metadata": c.Metadata,
		})
	}
	log.Debug("Strategy", "Strategy context assembled", map[string]interface{}{
		"collection": p.collection,
		"chunks":     len(chunks),
	})

	start := time.Now()
	answer, err := llm.Ask(ctx, p.answerer, constant.StrategySystemPrompt, question, FormatContext(chunks), p.answerOpts...)
	metrics.StageLatency.WithLabelValues("answer").Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("strategy answer: %w", err)
	}

	log.Info("Strategy", "Final answer", map[string]interface{}{"answer": answer})

	return &Result{
		Answer:      answer,
		Pipeline:    tools.StrategyDevelopmentPipeline,
		ContextList: contextList,
	}, nil
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"urban-assistant-be/internal/constant"
	"urban-assistant-be/internal/metrics"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/ai/aggregator"
	"urban-assistant-be/pkg/ai/selection"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/llm"
	"urban-assistant-be/pkg/urbanapi"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("urban-assistant/pipeline")

// AccessibilityPipeline answers from urban statistics tables chosen by a model
type AccessibilityPipeline struct {
	tools      tools.ToolSet
	selector   *selection.Selector
	verifier   *selection.Verifier // nil skips verification
	aggregator *aggregator.Aggregator
	answerer   llm.LLMProvider
	logger     logger.ILogger
	fallback   tools.ActionName
	answerOpts []llm.Option
}

type AccessibilityDeps struct {
	Tools      tools.ToolSet
	Selector   *selection.Selector
	Verifier   *selection.Verifier
	Aggregator *aggregator.Aggregator
	Answerer   llm.LLMProvider
	Logger     logger.ILogger
	AnswerOpts []llm.Option
}

func NewAccessibilityPipeline(d AccessibilityDeps) *AccessibilityPipeline {
	return &AccessibilityPipeline{
		tools:      d.Tools,
		selector:   d.Selector,
		verifier:   d.Verifier,
		aggregator: d.Aggregator,
		answerer:   d.Answerer,
		logger:     d.Logger,
		fallback:   tools.GeneralStatsCity,
		answerOpts: d.AnswerOpts,
	}
}

// Resolve picks the data-fetch actions for a question. The result is never empty.
func (p *AccessibilityPipeline) Resolve(ctx context.Context, question string, territory urbanapi.Territory) ([]tools.ActionName, error) {
	chosen, err := p.selector.Select(ctx, question, p.tools)
	if err != nil {
		return nil, err
	}

	if p.verifier != nil {
		// the verdict replaces the selection, abstention included
		chosen, err = p.verifier.Verify(ctx, question, chosen, p.tools)
		if err != nil {
			return nil, err
		}
	}

	actions := selection.EnsureNonEmpty(selection.Merge(chosen, selection.Defaults(territory)), p.fallback)

	logger.Ctx(ctx, p.logger).Info("Accessibility", fmt.Sprintf("%s: %s", logger.MsgSelectedFunctions, selection.Join(actions)), map[string]interface{}{
		"actions": actions,
	})
	return actions, nil
}

func (p *AccessibilityPipeline) Execute(ctx context.Context, question string, territory urbanapi.Territory) (*Result, error) {
	ctx, span := tracer.Start(ctx, "pipeline.accessibility")
	defer span.End()

	actions, err := p.Resolve(ctx, question, territory)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	bundle := p.aggregator.Aggregate(ctx, territory, actions)

	start := time.Now()
	answer, err := llm.Ask(ctx, p.answerer, constant.AccessibilitySystemPrompt, question, bundle.String(), p.answerOpts...)
	metrics.StageLatency.WithLabelValues("answer").Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("accessibility answer: %w", err)
	}

	logger.Ctx(ctx, p.logger).Info("Accessibility", "Final answer", map[string]interface{}{
		"sources": bundle.Sources(),
		"answer":  answer,
	})

	return &Result{
		Answer:   answer,
		Pipeline: tools.ServiceAccessibilityPipeline,
		Actions:  actions,
	}, nil
}

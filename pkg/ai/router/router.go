package router

import (
	"context"
	"fmt"

	"urban-assistant-be/internal/metrics"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/ai/pipeline"
	"urban-assistant-be/pkg/ai/selection"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/urbanapi"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("urban-assistant/router")

// Request is one question with its optional territory scope
type Request struct {
	Question  string
	ChunkNum  int // strategy passages to retrieve, 0 uses the configured default
	Territory urbanapi.Territory
}

// ExecuteResult is the unified result from any pipeline execution
type ExecuteResult struct {
	Answer      string
	Pipeline    tools.ActionName
	Functions   []tools.ActionName
	ContextList []string
}

type AccessibilityRunner interface {
	Execute(ctx context.Context, question string, territory urbanapi.Territory) (*pipeline.Result, error)
}

type StrategyRunner interface {
	Execute(ctx context.Context, question string, chunkNum int) (*pipeline.Result, error)
}

// Router chooses between the accessibility and strategy pipelines and runs the chosen one
type Router struct {
	tools         tools.ToolSet
	selector      *selection.Selector
	verifier      *selection.Verifier // nil skips verification
	accessibility AccessibilityRunner
	strategy      StrategyRunner
	logger        logger.ILogger
}

// NewRouter creates a new pipeline router
func NewRouter(
	selector *selection.Selector,
	verifier *selection.Verifier,
	accessibility AccessibilityRunner,
	strategy StrategyRunner,
	logger logger.ILogger,
) *Router {
	return &Router{
		tools:         tools.PipelineTools(),
		selector:      selector,
		verifier:      verifier,
		accessibility: accessibility,
		strategy:      strategy,
		logger:        logger,
	}
}

// Choose resolves the pipeline for a question. An empty selection falls back to the strategy pipeline.
func (r *Router) Choose(ctx context.Context, question string) (tools.ActionName, error) {
	chosen, err := r.selector.SelectOne(ctx, question, r.tools)
	if err != nil {
		return "", err
	}

	source := "selector"
	if r.verifier != nil {
		chosen, err = r.verifier.Verify(ctx, question, chosen, r.tools)
		if err != nil {
			return "", err
		}
		source = "verifier"
	}

	if len(chosen) == 0 {
		source = "default"
		chosen = []tools.ActionName{tools.StrategyDevelopmentPipeline}
	}

	metrics.PipelineSelections.WithLabelValues(chosen[0].String(), source).Inc()
	return chosen[0], nil
}

// Execute routes the request and returns the chosen pipeline's answer unchanged
func (r *Router) Execute(ctx context.Context, req Request) (*ExecuteResult, error) {
	ctx, span := tracer.Start(ctx, "router.execute")
	defer span.End()

	log := logger.Ctx(ctx, r.logger)
	log.Info("Router", fmt.Sprintf("%s: %s", logger.MsgTerritoryName, req.Territory.NameID), nil)
	log.Info("Router", fmt.Sprintf("%s: %s", logger.MsgTerritoryType, req.Territory.Type), nil)

	chosen, err := r.Choose(ctx, req.Question)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("pipeline", chosen.String()))
	log.Info("Router", fmt.Sprintf("%s: %s", logger.MsgSelectedPipeline, chosen), nil)

	var res *pipeline.Result
	switch chosen {
	case tools.ServiceAccessibilityPipeline:
		res, err = r.accessibility.Execute(ctx, req.Question, req.Territory)
	default:
		res, err = r.strategy.Execute(ctx, req.Question, req.ChunkNum)
	}
	if err != nil {
		span.RecordError(err)
		log.Error("Router", "Pipeline failed", map[string]interface{}{
			"pipeline": chosen,
			"error":    err.Error(),
		})
		return nil, err
	}

	return &ExecuteResult{
		Answer:      res.Answer,
		Pipeline:    chosen,
		Functions:   res.Actions,
		ContextList: res.ContextList,
	}, nil
}

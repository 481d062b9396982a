package selection

import (
	"context"
	"fmt"
	"strings"

	"urban-assistant-be/internal/constant"
	"urban-assistant-be/internal/metrics"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/ai/matcher"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/llm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("urban-assistant/selection")

// Selector asks a function-calling model which tools answer a question
type Selector struct {
	provider llm.LLMProvider
	logger   logger.ILogger
	options  []llm.Option
}

func NewSelector(provider llm.LLMProvider, log logger.ILogger, opts ...llm.Option) *Selector {
	return &Selector{provider: provider, logger: log, options: opts}
}

// Select lets the model pick any number of tools from set
func (s *Selector) Select(ctx context.Context, question string, set tools.ToolSet) ([]tools.ActionName, error) {
	return s.run(ctx, question, set, constant.FunctionCallingUserPrompt, "select")
}

// SelectOne instructs the model to name a single tool. The parsed response may
// still hold more than one name; callers use the first.
func (s *Selector) SelectOne(ctx context.Context, question string, set tools.ToolSet) ([]tools.ActionName, error) {
	return s.run(ctx, question, set, constant.BinaryFunctionCallingUserPrompt, "select_one")
}

func (s *Selector) run(ctx context.Context, question string, set tools.ToolSet, userPrompt, stage string) ([]tools.ActionName, error) {
	ctx, span := tracer.Start(ctx, "selection."+stage)
	defer span.End()
	span.SetAttributes(attribute.String("tool_set", set.Name()))

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: fmt.Sprintf(constant.FunctionCallingSystemPrompt, set.Render())},
		{Role: llm.RoleUser, Content: fmt.Sprintf(userPrompt, question)},
	}

	raw, err := s.provider.Chat(ctx, history, s.options...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s over %s: %w", stage, set.Name(), err)
	}

	actions := toActions(matcher.ParseActions(raw, set.Vocabulary()))
	record(set, stage, actions)

	logger.Ctx(ctx, s.logger).Debug("Selection", "Model selection parsed", map[string]interface{}{
		"tool_set": set.Name(),
		"raw":      raw,
		"actions":  actions,
	})
	span.SetAttributes(attribute.StringSlice("actions", names(actions)))
	return actions, nil
}

func toActions(in []string) []tools.ActionName {
	if len(in) == 0 {
		return nil
	}
	out := make([]tools.ActionName, len(in))
	for i, v := range in {
		out[i] = tools.ActionName(v)
	}
	return out
}

func names(actions []tools.ActionName) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.String()
	}
	return out
}

// Join renders actions the way prompts and logs show them
func Join(actions []tools.ActionName) string {
	return strings.Join(names(actions), " ")
}

func record(set tools.ToolSet, stage string, actions []tools.ActionName) {
	for _, a := range actions {
		metrics.ActionSelections.WithLabelValues(set.Name(), stage, a.String()).Inc()
	}
}

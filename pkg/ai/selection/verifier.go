package selection

import (
	"context"
	"fmt"
	"regexp"

	"urban-assistant-be/internal/constant"
	"urban-assistant-be/internal/metrics"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/ai/matcher"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/llm"

	"go.opentelemetry.io/otel/attribute"
)

// correctAnswerLine captures what follows the marker on the first line that starts with it
var correctAnswerLine = regexp.MustCompile(`(?m)^\s*\[Correct answer\]:[ \t]*(.*)$`)

// Verifier asks a second model to confirm or correct a selection
type Verifier struct {
	provider   llm.LLMProvider
	logger     logger.ILogger
	userPrompt string
	options    []llm.Option
}

// NewFunctionVerifier checks data-function selections
func NewFunctionVerifier(provider llm.LLMProvider, log logger.ILogger, opts ...llm.Option) *Verifier {
	return &Verifier{provider: provider, logger: log, userPrompt: constant.FunctionVerifierUserPrompt, options: opts}
}

// NewPipelineVerifier checks the choice between the two pipelines
func NewPipelineVerifier(provider llm.LLMProvider, log logger.ILogger, opts ...llm.Option) *Verifier {
	return &Verifier{provider: provider, logger: log, userPrompt: constant.PipelineVerifierUserPrompt, options: opts}
}

// Verify returns the corrected selection. A response without a marker line,
// or with nothing after the marker, is an abstention and yields no actions.
func (v *Verifier) Verify(ctx context.Context, question string, proposed []tools.ActionName, set tools.ToolSet) ([]tools.ActionName, error) {
	ctx, span := tracer.Start(ctx, "selection.verify")
	defer span.End()
	span.SetAttributes(attribute.String("tool_set", set.Name()))

	answer := Join(proposed)
	if answer == "" {
		answer = "none"
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.VerifierSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(v.userPrompt, question, answer, set.Render())},
	}

	raw, err := v.provider.Chat(ctx, history, v.options...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("verify over %s: %w", set.Name(), err)
	}

	log := logger.Ctx(ctx, v.logger)
	actions, ok := ParseVerdict(raw, set)
	if !ok {
		metrics.VerifierAbstentions.WithLabelValues(set.Name()).Inc()
		log.Warn("Selection", "Verifier abstained", map[string]interface{}{
			"tool_set": set.Name(),
			"raw":      raw,
		})
		return nil, nil
	}

	record(set, "verify", actions)
	log.Debug("Selection", "Verifier verdict parsed", map[string]interface{}{
		"tool_set": set.Name(),
		"proposed": names(proposed),
		"actions":  actions,
	})
	span.SetAttributes(attribute.StringSlice("actions", names(actions)))
	return actions, nil
}

// ParseVerdict reads the marker line of a verifier response. ok is false when
// the response carries no usable verdict.
func ParseVerdict(raw string, set tools.ToolSet) (actions []tools.ActionName, ok bool) {
	m := correctAnswerLine.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}
	actions = toActions(matcher.ParseActions(m[1], set.Vocabulary()))
	return actions, len(actions) > 0
}

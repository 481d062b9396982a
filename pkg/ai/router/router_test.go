package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/ai/aggregator"
	"urban-assistant-be/pkg/ai/pipeline"
	"urban-assistant-be/pkg/ai/selection"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/llm"
	"urban-assistant-be/pkg/llm/llmtest"
	"urban-assistant-be/pkg/rag/search"
	"urban-assistant-be/pkg/urbanapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	binaryPrompt = "ONLY the function name."
	multiPrompt  = "separated by spaces"
)

type fakeRetriever struct {
	chunks []search.Chunk
	gotK   int
}

func (f *fakeRetriever) Retrieve(_ context.Context, _, _ string, k int) ([]search.Chunk, error) {
	f.gotK = k
	if k < len(f.chunks) {
		return f.chunks[:k], nil
	}
	return f.chunks, nil
}

type harness struct {
	selector  *llmtest.Scripted
	verifier  *llmtest.Scripted
	answerer  *llmtest.Scripted
	retriever *fakeRetriever
	router    *Router
}

func newHarness(t *testing.T, verify bool, selector, verifier, answerer []llmtest.Reply) *harness {
	t.Helper()
	log := logger.NewNopLogger()
	set := tools.AccessibilityTools()

	funcs := make(map[tools.ActionName]urbanapi.FetchFunc)
	for _, name := range set.Names() {
		funcs[name] = func(context.Context, urbanapi.Territory) (json.RawMessage, error) {
			return json.RawMessage(fmt.Sprintf(`{"table":"%s"}`, name)), nil
		}
	}
	registry, err := urbanapi.NewRegistry(funcs, set)
	require.NoError(t, err)

	h := &harness{
		selector: llmtest.New(selector...),
		verifier: llmtest.New(verifier...),
		answerer: llmtest.New(answerer...),
		retriever: &fakeRetriever{chunks: []search.Chunk{
			{Text: "Развитие транспорта", Score: 0.91},
			{Text: "Зелёные зоны", Score: 0.85},
			{Text: "Жилищное строительство", Score: 0.80},
		}},
	}

	sel := selection.NewSelector(h.selector, log)
	var fnVerifier, pipeVerifier *selection.Verifier
	if verify {
		fnVerifier = selection.NewFunctionVerifier(h.verifier, log)
		pipeVerifier = selection.NewPipelineVerifier(h.verifier, log)
	}

	access := pipeline.NewAccessibilityPipeline(pipeline.AccessibilityDeps{
		Tools:      set,
		Selector:   sel,
		Verifier:   fnVerifier,
		Aggregator: aggregator.NewAggregator(registry, log, aggregator.Config{}),
		Answerer:   h.answerer,
		Logger:     log,
	})
	strategy := pipeline.NewStrategyPipeline(h.retriever, h.answerer, log, "", 2)

	h.router = NewRouter(sel, pipeVerifier, access, strategy, log)
	return h
}

func TestUnrecognizedPipelineFallsBackToStrategy(t *testing.T) {
	h := newHarness(t, false,
		[]llmtest.Reply{{Match: binaryPrompt, Text: "  ...  "}},
		nil,
		[]llmtest.Reply{{Text: "The strategy prioritises transport. ANSWER: Транспорт и зелёные зоны."}},
	)

	res, err := h.router.Execute(context.Background(), Request{Question: "What are the strategy priorities?"})
	require.NoError(t, err)

	assert.Equal(t, tools.StrategyDevelopmentPipeline, res.Pipeline)
	assert.Equal(t, "Транспорт и зелёные зоны.", res.Answer)
	assert.Equal(t, []string{"Развитие транспорта", "Зелёные зоны"}, res.ContextList)
	assert.Empty(t, res.Functions)
	assert.Equal(t, 2, h.retriever.gotK)

	user := h.answerer.Calls[0][1].Content
	assert.Contains(t, user, "Отрывок 0: Развитие транспорта Отрывок 1: Зелёные зоны ")
	assert.Contains(t, user, "Question: What are the strategy priorities?")
}

func TestChunkNumOverridesDefault(t *testing.T) {
	h := newHarness(t, false,
		[]llmtest.Reply{{Match: binaryPrompt, Text: "strategy_development_pipeline"}},
		nil,
		[]llmtest.Reply{{Text: "ok"}},
	)

	res, err := h.router.Execute(context.Background(), Request{Question: "q", ChunkNum: 3})
	require.NoError(t, err)
	assert.Len(t, res.ContextList, 3)
	assert.Equal(t, 3, h.retriever.gotK)
}

func TestAccessibilityQuestionForCity(t *testing.T) {
	h := newHarness(t, false,
		[]llmtest.Reply{
			{Match: binaryPrompt, Text: "service_accessibility_pipeline"},
			{Match: multiPrompt, Text: "get_general_stats_healthcare get_general_stats_education"},
		},
		nil,
		[]llmtest.Reply{{Text: "ANSWER: About 12 minutes to hospitals and 8 to schools."}},
	)

	res, err := h.router.Execute(context.Background(), Request{
		Question:  "average accessibility time of hospitals and schools",
		Territory: urbanapi.Territory{Type: urbanapi.TerritoryCity, NameID: "Санкт-Петербург"},
	})
	require.NoError(t, err)

	assert.Equal(t, tools.ServiceAccessibilityPipeline, res.Pipeline)
	assert.Equal(t, "About 12 minutes to hospitals and 8 to schools.", res.Answer)
	assert.Equal(t, []tools.ActionName{
		tools.GeneralStatsHealthcare, tools.GeneralStatsEducation, tools.GeneralStatsCity,
	}, res.Functions)
	assert.Nil(t, res.ContextList)

	user := h.answerer.Calls[0][1].Content
	assert.Contains(t, user, `{'table':'get_general_stats_healthcare'}{'table':'get_general_stats_education'}{'table':'get_general_stats_city'}`)
}

func TestFunctionCallReplyRoutesToNamedPipeline(t *testing.T) {
	h := newHarness(t, false,
		[]llmtest.Reply{
			{Match: binaryPrompt, Text: `{"name": "service_accessibility_pipeline", "arguments": {"query": "hospitals"}}`},
			{Match: multiPrompt, Text: "The relevant functions are get_general_stats_healthcare and get_general_stats_city."},
		},
		nil,
		[]llmtest.Reply{{Text: "ANSWER: ok"}},
	)

	res, err := h.router.Execute(context.Background(), Request{
		Question:  "how far are hospitals?",
		Territory: urbanapi.Territory{Type: urbanapi.TerritoryCity},
	})
	require.NoError(t, err)
	assert.Equal(t, tools.ServiceAccessibilityPipeline, res.Pipeline)
	assert.Equal(t, []tools.ActionName{tools.GeneralStatsHealthcare, tools.GeneralStatsCity}, res.Functions)
}

func TestVerifierAbstentionFallsBackToStrategy(t *testing.T) {
	h := newHarness(t, true,
		[]llmtest.Reply{{Match: binaryPrompt, Text: "service_accessibility_pipeline"}},
		[]llmtest.Reply{{Text: "I am not sure which one fits."}},
		[]llmtest.Reply{{Text: "ANSWER: answer"}},
	)

	res, err := h.router.Execute(context.Background(), Request{Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, tools.StrategyDevelopmentPipeline, res.Pipeline)
	assert.Equal(t, 1, h.verifier.CallCount())
}

func TestVerifierOverridesSelection(t *testing.T) {
	h := newHarness(t, true,
		[]llmtest.Reply{
			{Match: binaryPrompt, Text: "strategy_development_pipeline"},
			{Match: multiPrompt, Text: "get_general_stats_sports"},
		},
		[]llmtest.Reply{
			{Match: "descriptions of 2 functions", Text: "[Correct answer]: service_accessibility_pipeline"},
			{Match: "[Function Descriptions]", Text: "[Correct answer]: get_general_stats_culture"},
		},
		[]llmtest.Reply{{Text: "done"}},
	)

	res, err := h.router.Execute(context.Background(), Request{
		Question:  "how many theatres are there?",
		Territory: urbanapi.Territory{Type: urbanapi.TerritoryDistrict, NameID: "Адмиралтейский"},
	})
	require.NoError(t, err)
	assert.Equal(t, tools.ServiceAccessibilityPipeline, res.Pipeline)
	assert.Equal(t, []tools.ActionName{tools.GeneralStatsCulture, tools.GeneralStatsDistrictsMO}, res.Functions)
}

func TestUpstreamFailurePropagates(t *testing.T) {
	upstream := fmt.Errorf("%w: %w", llm.ErrUpstreamGeneration, errors.New("deadline exceeded"))

	t.Run("selector", func(t *testing.T) {
		h := newHarness(t, false, []llmtest.Reply{{Err: upstream}}, nil, nil)
		_, err := h.router.Execute(context.Background(), Request{Question: "q"})
		assert.ErrorIs(t, err, llm.ErrUpstreamGeneration)
	})

	t.Run("answer", func(t *testing.T) {
		h := newHarness(t, false,
			[]llmtest.Reply{{Match: binaryPrompt, Text: "strategy_development_pipeline"}},
			nil,
			[]llmtest.Reply{{Err: upstream}},
		)
		_, err := h.router.Execute(context.Background(), Request{Question: "q"})
		assert.ErrorIs(t, err, llm.ErrUpstreamGeneration)
	})
}

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/pkg/ai/aggregator"
	"urban-assistant-be/pkg/ai/selection"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/llm/llmtest"
	"urban-assistant-be/pkg/rag/search"
	"urban-assistant-be/pkg/urbanapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatContext(t *testing.T) {
	got := FormatContext([]search.Chunk{{Text: "первый"}, {Text: "второй"}})
	assert.Equal(t, "Отрывок 0: первый Отрывок 1: второй ", got)
	assert.Empty(t, FormatContext(nil))
}

func newAccessibility(t *testing.T, selectorReply, verifierReply string) *AccessibilityPipeline {
	t.Helper()
	log := logger.NewNopLogger()
	set := tools.AccessibilityTools()

	funcs := make(map[tools.ActionName]urbanapi.FetchFunc)
	for _, name := range set.Names() {
		funcs[name] = func(context.Context, urbanapi.Territory) (json.RawMessage, error) {
			return json.RawMessage(`{}`), nil
		}
	}
	registry, err := urbanapi.NewRegistry(funcs, set)
	require.NoError(t, err)

	var verifier *selection.Verifier
	if verifierReply != "" {
		verifier = selection.NewFunctionVerifier(llmtest.New(llmtest.Reply{Text: verifierReply}), log)
	}

	return NewAccessibilityPipeline(AccessibilityDeps{
		Tools:      set,
		Selector:   selection.NewSelector(llmtest.New(llmtest.Reply{Text: selectorReply}), log),
		Verifier:   verifier,
		Aggregator: aggregator.NewAggregator(registry, log, aggregator.Config{}),
		Answerer:   llmtest.New(llmtest.Reply{Text: "ok"}),
		Logger:     log,
	})
}

func TestResolveIsNeverEmpty(t *testing.T) {
	tests := []struct {
		name      string
		selector  string
		verifier  string
		territory urbanapi.Territory
		want      []tools.ActionName
	}{
		{"nothing selected, no territory", "", "", urbanapi.Territory{},
			[]tools.ActionName{tools.GeneralStatsCity}},
		{"block default", "get_general_stats_culture", "", urbanapi.Territory{NameID: "78:1234"},
			[]tools.ActionName{tools.GeneralStatsCulture, tools.GeneralStatsBlock}},
		{"coordinates suppress block default", "", "", urbanapi.Territory{NameID: "x", Coordinates: []any{30.3, 59.9}},
			[]tools.ActionName{tools.GeneralStatsCity}},
		{"verifier abstains", "get_general_stats_sports", "no idea", urbanapi.Territory{Type: urbanapi.TerritoryDistrict},
			[]tools.ActionName{tools.GeneralStatsDistrictsMO}},
		{"default not duplicated", "get_general_stats_city", "", urbanapi.Territory{Type: urbanapi.TerritoryCity},
			[]tools.ActionName{tools.GeneralStatsCity}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newAccessibility(t, tt.selector, tt.verifier)
			got, err := p.Resolve(context.Background(), "q", tt.territory)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type failingRetriever struct{}

func (failingRetriever) Retrieve(context.Context, string, string, int) ([]search.Chunk, error) {
	return nil, errors.New("connection refused")
}

func TestStrategyRetrievalFailure(t *testing.T) {
	answerer := llmtest.New()
	p := NewStrategyPipeline(failingRetriever{}, answerer, logger.NewNopLogger(), "", 0)

	_, err := p.Execute(context.Background(), "q", 0)
	require.Error(t, err)
	assert.Zero(t, answerer.CallCount())
}

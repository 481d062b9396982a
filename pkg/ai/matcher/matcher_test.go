package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var statsVocabulary = []string{
	"get_general_stats_city",
	"get_general_stats_block",
	"get_general_stats_education",
	"get_general_stats_healthcare",
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		vocab     []string
		want      string
	}{
		{"exact", "get_general_stats_block", statsVocabulary, "get_general_stats_block"},
		{"single clear minimum", "gt_general_stats_city", []string{"get_general_stats_city", "get_general_stats_block"}, "get_general_stats_city"},
		{"misspelled", "get_genral_stats_helthcare", statsVocabulary, "get_general_stats_healthcare"},
		{"tie resolves to first", "ab", []string{"ax", "xb"}, "ax"},
		{"tie resolves to first reversed", "ab", []string{"xb", "ax"}, "xb"},
		{"empty candidate", "", []string{"aaa", "b", "cc"}, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nearest(tt.candidate, tt.vocab))
		})
	}
}

func TestNearestTieIsStable(t *testing.T) {
	vocab := []string{"cat", "bat", "hat"}
	first := Nearest("xat", vocab)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Nearest("xat", vocab))
	}
	assert.Equal(t, "cat", first)
}

func TestNearestPanicsOnEmptyVocabulary(t *testing.T) {
	assert.Panics(t, func() { Nearest("x", nil) })
}

func TestParseActions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"blank", "", nil},
		{"whitespace only", " \n\t ", nil},
		{"single", "get_general_stats_city", []string{"get_general_stats_city"}},
		{"marker stripped", "[Correct answer]: get_general_stats_healthcare get_general_stats_education",
			[]string{"get_general_stats_healthcare", "get_general_stats_education"}},
		{"duplicates collapse", "get_general_stats_city get_general_stats_city", []string{"get_general_stats_city"}},
		{"punctuation trimmed", "`get_general_stats_block`, get_general_stats_city.",
			[]string{"get_general_stats_block", "get_general_stats_city"}},
		{"misspellings snap", "get_general_stat_educaton\nget_gneral_stats_healthcar",
			[]string{"get_general_stats_education", "get_general_stats_healthcare"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseActions(tt.raw, statsVocabulary))
		})
	}
}

func TestParseActionsStaysInVocabulary(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"%%%% ### !!!",
		"I think you should call the healthcare function, then maybe schools",
		"get_general_stats_cty get_general_stats_blok",
		"[Correct answer]: \n\n",
		"Привет мир",
		"service_accessibility_pipeline strategy_development_pipeline",
	}

	allowed := map[string]bool{}
	for _, v := range statsVocabulary {
		allowed[v] = true
	}

	for _, in := range inputs {
		for _, got := range ParseActions(in, statsVocabulary) {
			assert.True(t, allowed[got], "input %q produced %q", in, got)
		}
	}
}

func TestParseActionsPrefersNamedEntries(t *testing.T) {
	pipelines := []string{"service_accessibility_pipeline", "strategy_development_pipeline"}

	tests := []struct {
		name  string
		raw   string
		vocab []string
		want  []string
	}{
		{"function call json",
			`{"name": "service_accessibility_pipeline", "arguments": {"question": "schools"}}`,
			pipelines, []string{"service_accessibility_pipeline"}},
		{"prose preamble", "The answer is service_accessibility_pipeline", pipelines,
			[]string{"service_accessibility_pipeline"}},
		{"prose around two functions",
			"The correct functions are get_general_stats_education and get_general_stats_city.",
			statsVocabulary, []string{"get_general_stats_education", "get_general_stats_city"}},
		{"near miss kept after named entry", "get_general_stats_city get_general_stat_educaton",
			statsVocabulary, []string{"get_general_stats_city", "get_general_stats_education"}},
		{"named entries in order of appearance", "strategy_development_pipeline, then service_accessibility_pipeline",
			pipelines, []string{"strategy_development_pipeline", "service_accessibility_pipeline"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseActions(tt.raw, tt.vocab))
		})
	}
}

func TestParseActionsSkipsEntryInsideLongerName(t *testing.T) {
	vocab := []string{"stats", "get_general_stats_city"}
	assert.Equal(t, []string{"get_general_stats_city"}, ParseActions("call get_general_stats_city", vocab))
}

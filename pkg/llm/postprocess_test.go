package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"no marker", "  plain text \n", "plain text"},
		{"english marker", "Let me think. ANSWER: 15 minutes", "15 minutes"},
		{"russian marker", "Рассуждение. ОТВЕТ: 12 школ", "12 школ"},
		{"last marker wins", "ANSWER: draft ANSWER: final", "final"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAnswer(tt.raw))
		})
	}
}

func TestPrepContext(t *testing.T) {
	assert.Equal(t, `{'a': 'b'}`, PrepContext(`{"a": "b"}`))
}

func TestUserPrompt(t *testing.T) {
	assert.Equal(t, "Question: why?", UserPrompt("why?", ""))
	assert.Equal(t, "Context: say 'hi' Question: why?", UserPrompt("why?", `say "hi"`))
}

func TestApplyOptions(t *testing.T) {
	o := Apply(WithTemperature(0.5), WithTopP(0.9), WithMaxTokens(10), WithModel("m"))
	assert.Equal(t, 0.5, o.Temperature)
	assert.Equal(t, 0.9, o.TopP)
	assert.Equal(t, 10, o.MaxTokens)
	assert.Equal(t, "m", o.Model)

	d := Apply()
	assert.Equal(t, 0.15, d.Temperature)
	assert.Equal(t, 0.15, d.TopP)
}

package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"urban-assistant-be/pkg/llm"
	"urban-assistant-be/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowProvider struct{}

func (slowProvider) Chat(ctx context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	select {
	case <-time.After(time.Second):
		return "late", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s slowProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, nil, opts...)
}

func TestGuardedRetriesThenSucceeds(t *testing.T) {
	fake := llmtest.New(
		llmtest.Reply{Err: errors.New("boom")},
		llmtest.Reply{Text: "ok"},
	)
	g := llm.NewGuarded(fake, time.Second, 1)

	out, err := g.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 2, fake.CallCount())
}

func TestGuardedWrapsFailure(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Err: errors.New("boom")})
	g := llm.NewGuarded(fake, time.Second, 0)

	_, err := g.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrUpstreamGeneration)
	assert.Contains(t, err.Error(), "boom")
}

func TestGuardedTimeoutIsUpstreamFailure(t *testing.T) {
	g := llm.NewGuarded(slowProvider{}, 20*time.Millisecond, 0)

	start := time.Now()
	_, err := g.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrUpstreamGeneration)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestAskExtractsAnswer(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: "thinking... ANSWER: 42"})

	out, err := llm.Ask(context.Background(), fake, "sys", "q", `ctx "quoted"`)
	require.NoError(t, err)
	assert.Equal(t, "42", out)

	require.Len(t, fake.Calls, 1)
	assert.Equal(t, llm.RoleSystem, fake.Calls[0][0].Role)
	assert.Equal(t, "Context: ctx 'quoted' Question: q", fake.Calls[0][1].Content)
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Guarded bounds every call of the wrapped provider with a timeout and a small
// number of immediate retries. Any failure that survives is wrapped with
// ErrUpstreamGeneration.
type Guarded struct {
	next       LLMProvider
	timeout    time.Duration
	maxRetries int
}

var _ LLMProvider = (*Guarded)(nil)

func NewGuarded(next LLMProvider, timeout time.Duration, maxRetries int) *Guarded {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Guarded{next: next, timeout: timeout, maxRetries: maxRetries}
}

func (g *Guarded) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		out, err := g.once(ctx, history, opts)
		if err == nil {
			return out, nil
		}
		lastErr = err
		// the caller gave up, retrying cannot help
		if ctx.Err() != nil {
			break
		}
	}
	if errors.Is(lastErr, ErrUpstreamGeneration) {
		return "", lastErr
	}
	return "", fmt.Errorf("%w: %w", ErrUpstreamGeneration, lastErr)
}

func (g *Guarded) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return g.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, opts...)
}

func (g *Guarded) once(ctx context.Context, history []Message, opts []Option) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.next.Chat(ctx, history, opts...)
}

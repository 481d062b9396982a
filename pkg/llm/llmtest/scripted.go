// Package llmtest provides a scripted LLMProvider for tests.
package llmtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"urban-assistant-be/pkg/llm"
)

// Reply is one scripted answer. Match, when set, must be contained in the
// last message of the history for the reply to be used.
type Reply struct {
	Match string
	Text  string
	Err   error
}

// Scripted answers calls from a list of replies. Replies with a Match are
// tried first; otherwise unmatched replies are consumed in order.
type Scripted struct {
	mu      sync.Mutex
	replies []Reply
	Calls   [][]llm.Message
}

var _ llm.LLMProvider = (*Scripted)(nil)

func New(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

func (s *Scripted) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, history)

	last := ""
	if len(history) > 0 {
		last = history[len(history)-1].Content
	}

	for i, r := range s.replies {
		if r.Match != "" && strings.Contains(last, r.Match) {
			s.replies = append(s.replies[:i], s.replies[i+1:]...)
			return r.Text, r.Err
		}
	}
	for i, r := range s.replies {
		if r.Match == "" {
			s.replies = append(s.replies[:i], s.replies[i+1:]...)
			return r.Text, r.Err
		}
	}
	return "", fmt.Errorf("llmtest: no scripted reply for %q", last)
}

func (s *Scripted) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// CallCount is safe to read while calls are in flight
func (s *Scripted) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

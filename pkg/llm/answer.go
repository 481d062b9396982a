package llm

import (
	"context"
	"fmt"
)

// UserPrompt formats a question with optional retrieved context
func UserPrompt(question, context string) string {
	if context == "" {
		return fmt.Sprintf("Question: %s", question)
	}
	return fmt.Sprintf("Context: %s Question: %s", PrepContext(context), question)
}

// Ask sends system instructions plus the formatted question and returns the
// post-processed answer.
func Ask(ctx context.Context, p LLMProvider, system, question, context string, opts ...Option) (string, error) {
	history := []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: UserPrompt(question, context)},
	}
	raw, err := p.Chat(ctx, history, opts...)
	if err != nil {
		return "", err
	}
	return ExtractAnswer(raw), nil
}

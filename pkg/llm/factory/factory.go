package factory

import (
	"fmt"
	"time"

	"urban-assistant-be/pkg/llm"
	"urban-assistant-be/pkg/llm/llamatpl"
	"urban-assistant-be/pkg/llm/ollama"
	"urban-assistant-be/pkg/llm/openai"
)

// Spec describes one model endpoint
type Spec struct {
	Provider   string // "openai", "ollama", "llama_template"
	BaseURL    string
	Model      string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// NewLLMProvider builds the connector and wraps it with the timeout/retry guard
func NewLLMProvider(s Spec) (llm.LLMProvider, error) {
	var (
		p   llm.LLMProvider
		err error
	)

	switch s.Provider {
	case "openai":
		p = openai.NewOpenAIProvider(s.APIKey, s.BaseURL, s.Model, s.Timeout)
	case "ollama":
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		p, err = ollama.NewOllamaProvider(baseURL, s.Model, s.Timeout)
	case "llama_template":
		if s.BaseURL == "" {
			return nil, fmt.Errorf("llama_template provider requires a url")
		}
		p = llamatpl.NewTemplateProvider(s.BaseURL, s.Timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
	if err != nil {
		return nil, err
	}

	return llm.NewGuarded(p, s.Timeout, s.MaxRetries), nil
}

package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider embeds through an OpenAI-compatible /embeddings endpoint
type OpenAIProvider struct {
	client *goopenai.Client
	model  string
}

func NewOpenAIProvider(apiKey, baseURL, model string, timeout time.Duration) *OpenAIProvider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	if model == "" {
		model = string(goopenai.SmallEmbedding3)
	}
	return &OpenAIProvider{client: goopenai.NewClientWithConfig(cfg), model: model}
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Model: goopenai.EmbeddingModel(p.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return normalizeVector(resp.Data[0].Embedding), nil
}

// NewProvider picks an embedding backend by name
func NewProvider(provider, baseURL, model, apiKey string, timeout time.Duration) (EmbeddingProvider, error) {
	switch provider {
	case "", "ollama":
		return NewOllamaProvider(baseURL, model, timeout)
	case "openai":
		return NewOpenAIProvider(apiKey, baseURL, model, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}

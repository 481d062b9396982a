package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	ollamaapi "github.com/ollama/ollama/api"
)

// OllamaProvider embeds with a local Ollama model (e.g., nomic-embed-text)
type OllamaProvider struct {
	client *ollamaapi.Client
	model  string
}

func NewOllamaProvider(baseURL, model string, timeout time.Duration) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}
	return &OllamaProvider{
		client: ollamaapi.NewClient(u, &http.Client{Timeout: timeout}),
		model:  model,
	}, nil
}

func (p *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := p.client.Embed(ctx, &ollamaapi.EmbedRequest{
		Model: p.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if res == nil || len(res.Embeddings) == 0 || len(res.Embeddings[0]) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return normalizeVector(res.Embeddings[0]), nil
}

// Package llamatpl connects to hosted llama models that accept a raw
// llama3 chat template inside a job envelope.
package llamatpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"urban-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	beginOfText = "<|begin_of_text|>"
	endOfTurn   = "<|eot_id|>"
)

type TemplateProvider struct {
	URL    string
	Client *http.Client
}

var _ llm.LLMProvider = &TemplateProvider{}

func NewTemplateProvider(url string, timeout time.Duration) *TemplateProvider {
	return &TemplateProvider{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

type jobMeta struct {
	Temperature string   `json:"temperature"`
	TokensLimit string   `json:"tokens_limit"`
	StopWords   []string `json:"stop_words"`
}

type jobRequest struct {
	JobID   string  `json:"job_id"`
	Meta    jobMeta `json:"meta"`
	Content string  `json:"content"`
}

type jobResponse struct {
	Content *string `json:"content"`
}

// RenderTemplate lays the history out in the llama3 header format and leaves
// an open assistant turn for the model to complete.
func RenderTemplate(history []llm.Message) string {
	var b strings.Builder
	b.WriteString(beginOfText)
	for _, msg := range history {
		b.WriteString(header(msg.Role))
		b.WriteString(msg.Content)
		b.WriteString(endOfTurn)
	}
	b.WriteString(header(llm.RoleAssistant))
	return b.String()
}

func header(role string) string {
	return "<|start_header_id|>" + role + "<|end_header_id|>"
}

func (p *TemplateProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(opts...)

	payload := jobRequest{
		JobID: uuid.NewString(),
		Meta: jobMeta{
			Temperature: strconv.FormatFloat(options.Temperature, 'f', -1, 64),
			TokensLimit: strconv.Itoa(options.MaxTokens),
			StopWords:   []string{},
		},
		Content: RenderTemplate(history),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: llama request: %w", llm.ErrUpstreamGeneration, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", llm.ErrUpstreamGeneration, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: llama status %d", llm.ErrUpstreamGeneration, resp.StatusCode)
	}

	var out jobResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode envelope: %w", llm.ErrUpstreamGeneration, err)
	}
	if out.Content == nil {
		return "", fmt.Errorf("%w: envelope has no content", llm.ErrUpstreamGeneration)
	}

	return *out.Content, nil
}

func (p *TemplateProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

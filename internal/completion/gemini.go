package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/valpere/gemtext/internal/prompt"
)

const DefaultGeminiModel = "gemini-2.0-flash"

type Gemini struct {
	model  string
	client *genai.Client
}

// NewGemini creates a Gemini API client. httpClient may be nil, in which case
// one with cfg.Timeout is used.
func NewGemini(ctx context.Context, cfg ServiceConfig, httpClient *http.Client) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{model: cfg.Model, client: client}, nil
}

func (g *Gemini) Name() string {
	return ProviderGemini
}

func (g *Gemini) Model() string {
	return g.model
}

func (g *Gemini) Complete(ctx context.Context, text string, params prompt.GenerationParams) (*Completion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, serviceError(g.Name(), 0, ErrEmptyPrompt)
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(params.Temperature)),
		MaxOutputTokens: int32(params.MaxTokens),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, serviceError(g.Name(), apiErr.Code, err)
		}
		return nil, serviceError(g.Name(), 0, err)
	}

	out := resp.Text()
	if out == "" {
		return nil, serviceError(g.Name(), 0, ErrEmptyCompletion)
	}

	c := &Completion{
		Text:    out,
		Model:   g.model,
		Latency: time.Since(start),
	}
	if resp.UsageMetadata != nil {
		c.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		c.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return c, nil
}

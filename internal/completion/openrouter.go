package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/valpere/gemtext/internal/prompt"
)

const (
	DefaultOpenRouterURL   = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel = "google/gemini-2.0-flash-001"
)

// OpenRouter talks to the OpenAI-compatible chat completions endpoint.
type OpenRouter struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewOpenRouter(cfg ServiceConfig, httpClient *http.Client) *OpenRouter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenRouterURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenRouterModel
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &OpenRouter{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  httpClient,
	}
}

func (s *OpenRouter) Name() string {
	return ProviderOpenRouter
}

func (s *OpenRouter) Model() string {
	return s.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (s *OpenRouter) Complete(ctx context.Context, text string, params prompt.GenerationParams) (*Completion, error) {
	if s.apiKey == "" {
		return nil, serviceError(s.Name(), 0, ErrMissingAPIKey)
	}
	if strings.TrimSpace(text) == "" {
		return nil, serviceError(s.Name(), 0, ErrEmptyPrompt)
	}

	start := time.Now()

	jsonData, err := json.Marshal(chatRequest{
		Model:       s.model,
		Messages:    []chatMessage{{Role: "user", Content: text}},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return nil, serviceError(s.Name(), 0, fmt.Errorf("failed to marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, serviceError(s.Name(), 0, fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("X-Title", "gemtext")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, serviceError(s.Name(), 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, serviceError(s.Name(), resp.StatusCode, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, serviceError(s.Name(), 0, fmt.Errorf("failed to decode response: %w", err))
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return nil, serviceError(s.Name(), 0, ErrEmptyCompletion)
	}

	return &Completion{
		Text:         out.Choices[0].Message.Content,
		Model:        s.model,
		PromptTokens: out.Usage.PromptTokens,
		OutputTokens: out.Usage.CompletionTokens,
		Latency:      time.Since(start),
	}, nil
}

// Package completion reaches the hosted language model. Every adapter collapses
// network, auth, quota and malformed-response failures into *ServiceError.
package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valpere/gemtext/internal/prompt"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"

	DefaultTimeout = 60 * time.Second
)

var (
	ErrMissingAPIKey   = errors.New("missing api key")
	ErrEmptyPrompt     = errors.New("prompt is empty")
	ErrEmptyCompletion = errors.New("model returned no text")
)

type ServiceConfig struct {
	Provider    string        `mapstructure:"provider" json:"provider"`
	APIKey      string        `mapstructure:"api_key" json:"-"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	CleanOutput bool          `mapstructure:"clean_output" json:"clean_output"`
}

// Completion is the text returned for one prompt plus call metadata.
type Completion struct {
	Text         string        `json:"text"`
	Model        string        `json:"model"`
	PromptTokens int           `json:"prompt_tokens"`
	OutputTokens int           `json:"output_tokens"`
	Latency      time.Duration `json:"latency"`
}

// Completer sends a single prompt and blocks until the model answers.
type Completer interface {
	Name() string
	Complete(ctx context.Context, text string, params prompt.GenerationParams) (*Completion, error)
}

// ServiceError is the single error surface of the completion call.
type ServiceError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func serviceError(provider string, status int, err error) *ServiceError {
	return &ServiceError{Provider: provider, Status: status, Err: err}
}

// New builds the completer named by cfg.Provider.
func New(ctx context.Context, cfg ServiceConfig) (Completer, error) {
	var (
		c   Completer
		err error
	)
	switch cfg.Provider {
	case "", ProviderGemini:
		c, err = NewGemini(ctx, cfg, nil)
	case ProviderOpenRouter:
		c = NewOpenRouter(cfg, nil)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	if cfg.CleanOutput {
		c = WithCleanup(c)
	}
	return c, nil
}

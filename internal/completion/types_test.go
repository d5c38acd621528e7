package completion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/valpere/gemtext/internal/prompt"
)

type fixedCompleter struct {
	text string
}

func (f fixedCompleter) Name() string { return "fixed" }

func (f fixedCompleter) Complete(ctx context.Context, text string, params prompt.GenerationParams) (*Completion, error) {
	return &Completion{Text: f.text}, nil
}

func TestServiceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(serviceError("gemini", 0, cause))

	if !errors.Is(err, cause) {
		t.Error("expected ServiceError to unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "gemini") || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("unexpected message %q", err.Error())
	}

	withStatus := serviceError("openrouter", 503, cause)
	if !strings.Contains(withStatus.Error(), "503") {
		t.Errorf("expected status in message, got %q", withStatus.Error())
	}
}

func TestNew(t *testing.T) {
	c, err := New(context.Background(), ServiceConfig{Provider: "gemini", APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != ProviderGemini {
		t.Errorf("expected gemini, got %q", c.Name())
	}

	c, err = New(context.Background(), ServiceConfig{Provider: "openrouter", APIKey: "k", CleanOutput: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*cleaning); !ok {
		t.Errorf("expected cleanup wrapper, got %T", c)
	}

	if _, err := New(context.Background(), ServiceConfig{Provider: "ollama"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestWithCleanup(t *testing.T) {
	c := WithCleanup(fixedCompleter{text: "<think>x</think>Here is the translation: hola mundo"})

	res, err := c.Complete(context.Background(), "p", prompt.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "hola mundo" {
		t.Errorf("expected 'hola mundo', got %q", res.Text)
	}

	empty := WithCleanup(fixedCompleter{text: "<think>only thoughts"})
	if _, err := empty.Complete(context.Background(), "p", prompt.DefaultParams()); !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("expected ErrEmptyCompletion, got %v", err)
	}
}

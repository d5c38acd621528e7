package completion

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/valpere/gemtext/internal/prompt"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	g, err := NewGemini(context.Background(), ServiceConfig{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: server.URL,
	}, server.Client())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return g
}

func TestGemini_Complete_Success(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("x-goog-api-key"))
		}

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
			GenerationConfig struct {
				Temperature     float64 `json:"temperature"`
				MaxOutputTokens int     `json:"maxOutputTokens"`
			} `json:"generationConfig"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(body.Contents) != 1 || len(body.Contents[0].Parts) != 1 {
			t.Fatalf("expected one content part, got %+v", body.Contents)
		}
		if got := body.Contents[0].Parts[0].Text; got != "Translate the following text into Spanish:\n\nhello world" {
			t.Errorf("unexpected prompt %q", got)
		}
		if math.Abs(body.GenerationConfig.Temperature-0.3) > 1e-6 {
			t.Errorf("expected temperature 0.3, got %v", body.GenerationConfig.Temperature)
		}
		if body.GenerationConfig.MaxOutputTokens != 600 {
			t.Errorf("expected maxOutputTokens 600, got %d", body.GenerationConfig.MaxOutputTokens)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"hola mundo"}]}}],"usageMetadata":{"promptTokenCount":12,"candidatesTokenCount":3}}`))
	})

	res, err := g.Complete(context.Background(), "Translate the following text into Spanish:\n\nhello world", prompt.GenerationParams{Temperature: 0.3, MaxTokens: 600})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "hola mundo" {
		t.Errorf("expected 'hola mundo', got %q", res.Text)
	}
	if res.Model != "gemini-test" {
		t.Errorf("expected model 'gemini-test', got %q", res.Model)
	}
	if res.PromptTokens != 12 || res.OutputTokens != 3 {
		t.Errorf("unexpected token counts: %+v", res)
	}
}

func TestGemini_Complete_APIError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	res, err := g.Complete(context.Background(), "hi", prompt.DefaultParams())
	if err == nil {
		t.Fatal("expected error for quota failure")
	}
	if res != nil {
		t.Errorf("expected nil result, got %+v", res)
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %T", err)
	}
	if svcErr.Provider != ProviderGemini {
		t.Errorf("expected provider gemini, got %q", svcErr.Provider)
	}
}

func TestGemini_Complete_EmptyCandidates(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := g.Complete(context.Background(), "hi", prompt.DefaultParams())
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestGemini_Complete_EmptyPrompt(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty prompt")
	})

	_, err := g.Complete(context.Background(), "  ", prompt.DefaultParams())
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestNewGemini_NoAPIKey(t *testing.T) {
	_, err := NewGemini(context.Background(), ServiceConfig{}, nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewGemini_DefaultModel(t *testing.T) {
	g, err := NewGemini(context.Background(), ServiceConfig{APIKey: "k"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Model() != DefaultGeminiModel {
		t.Errorf("expected %q, got %q", DefaultGeminiModel, g.Model())
	}
	if g.Name() != "gemini" {
		t.Errorf("expected 'gemini', got %q", g.Name())
	}
}

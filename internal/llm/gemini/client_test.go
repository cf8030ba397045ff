package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feasibility-backend/internal/llm"
)

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "gemini-1.5-pro-latest"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "ניתוח מלא"}}}},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient("key", "gemini-1.5-pro-latest", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	out, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "ניתוח מלא" {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(gotPath, "gemini-1.5-pro-latest:generateContent") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "key" {
		t.Fatalf("unexpected key %q", gotKey)
	}
}

func TestGenerateClassifiesSafetyBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "Candidate was blocked due to SAFETY",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}))
	defer srv.Close()

	c, _ := NewClient("key", "gemini-1.5-pro-latest", WithBaseURL(srv.URL))
	_, err := c.Generate(context.Background(), "prompt")

	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Kind != llm.KindSafety {
		t.Fatalf("kind = %v, want safety", provErr.Kind)
	}
}

func TestGenerateRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, _ := NewClient("key", "gemini-1.5-pro-latest", WithBaseURL(srv.URL))
	_, err := c.Generate(context.Background(), "prompt")

	if !llm.IsTransient(err) {
		t.Fatalf("429 should classify transient, got %v", err)
	}
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c, _ := NewClient("key", "gemini-1.5-pro-latest", WithBaseURL(srv.URL))
	_, err := c.Generate(context.Background(), "prompt")

	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) || provErr.Kind != llm.KindEmpty {
		t.Fatalf("expected empty-kind ProviderError, got %v", err)
	}
}

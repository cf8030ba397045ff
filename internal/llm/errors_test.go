package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyProviderMessage(t *testing.T) {
	cases := []struct {
		message string
		want    Kind
	}{
		{"Candidate was blocked due to SAFETY", KindSafety},
		{"You exceeded your current quota", KindQuota},
		{"API key not valid. Please pass a valid API_KEY", KindAPIKey},
		{"Rate limit reached for requests", KindRateLimit},
		{"The model is overloaded", KindOverloaded},
		{"Service Unavailable", KindOverloaded},
		{"request timeout", KindTimeout},
		{"something else entirely", KindUnknown},
	}
	for _, tc := range cases {
		if got := ClassifyProviderMessage(tc.message); got != tc.want {
			t.Errorf("ClassifyProviderMessage(%q) = %v, want %v", tc.message, got, tc.want)
		}
	}
}

func TestClassifyPrefersTypedErrors(t *testing.T) {
	err := fmt.Errorf("call failed: %w", NewProviderError(EngineGemini, KindSafety, 400, "blocked"))
	if got := Classify(err); got != KindSafety {
		t.Fatalf("Classify wrapped provider error = %v, want %v", got, KindSafety)
	}
}

func TestClassifyDeadlineExceeded(t *testing.T) {
	if got := Classify(context.DeadlineExceeded); got != KindTimeout {
		t.Fatalf("Classify(DeadlineExceeded) = %v, want %v", got, KindTimeout)
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(NewProviderError(EngineChatGPT, KindRateLimit, 429, "")) {
		t.Fatal("rate limit should be transient")
	}
	if !IsTransient(NewProviderError(EngineChatGPT, KindOverloaded, 503, "")) {
		t.Fatal("overloaded should be transient")
	}
	if IsTransient(NewProviderError(EngineChatGPT, KindQuota, 403, "")) {
		t.Fatal("quota should not be transient")
	}
	if IsTransient(errors.New("boom")) {
		t.Fatal("unknown error should not be transient")
	}
}

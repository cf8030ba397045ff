// Package llm abstracts the generative-text providers used for venture
// analysis and wraps them with retry, timeout and fallback policies.
package llm

import (
	"context"
	"time"
)

// Known engine names. These are the only values persisted on AI results.
const (
	EngineChatGPT    = "chatgpt"
	EngineGemini     = "gemini"
	EnginePerplexity = "perplexity"
)

// Engine performs a single generation attempt against one provider.
type Engine interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// DisabledEngine stands in for a provider with no configured API key.
// Every call resolves to the api-key failure path.
type DisabledEngine string

func (e DisabledEngine) Name() string { return string(e) }

func (e DisabledEngine) Generate(ctx context.Context, prompt string) (string, error) {
	return "", NewProviderError(string(e), KindAPIKey, 0, "API key not configured")
}

// RetryPolicy bounds the attempt loop of an Adapter.
type RetryPolicy struct {
	MaxRetries    int
	BaseDelay     time.Duration
	BackoffFactor int
	// Timeout bounds a single attempt. Zero means the engine's own HTTP
	// client timeout applies.
	Timeout time.Duration
}

// Adapter drives an Engine with retries and degrades persistent failures
// to a user-facing message. RunAnalysis never returns an error: callers
// always get displayable text.
type Adapter struct {
	Engine Engine
	Policy RetryPolicy

	sleep func(ctx context.Context, d time.Duration) error
}

// NewChatGPTAdapter wraps an engine with the ChatGPT retry policy.
func NewChatGPTAdapter(engine Engine) *Adapter {
	return &Adapter{
		Engine: engine,
		Policy: RetryPolicy{
			MaxRetries:    2,
			BaseDelay:     800 * time.Millisecond,
			BackoffFactor: 2,
			Timeout:       150 * time.Second,
		},
	}
}

// NewGeminiAdapter wraps an engine with the Gemini retry policy.
func NewGeminiAdapter(engine Engine) *Adapter {
	return &Adapter{
		Engine: engine,
		Policy: RetryPolicy{
			MaxRetries:    3,
			BaseDelay:     2 * time.Second,
			BackoffFactor: 2,
		},
	}
}

// Name returns the wrapped engine's name.
func (a *Adapter) Name() string {
	return a.Engine.Name()
}

// RunAnalysis runs the attempt loop. Transient provider failures (rate
// limit, overload) are retried with increasing delay; permanent failures
// stop immediately. On final failure the classified error is converted
// into a canned Hebrew message, so the result is always safe to persist
// as analysis text; ok reports whether the text is a real analysis
// rather than a fallback.
func (a *Adapter) RunAnalysis(ctx context.Context, prompt string) (text string, ok bool) {
	maxRetries := a.Policy.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			delay := a.Policy.BaseDelay * time.Duration(attempt)
			if IsTransient(lastErr) {
				delay *= time.Duration(a.Policy.BackoffFactor)
			}
			if err := a.wait(ctx, delay); err != nil {
				lastErr = err
				break
			}
		}

		out, err := a.generateOnce(ctx, prompt)
		if err == nil {
			return Sanitize(out), true
		}
		lastErr = err
		if !IsTransient(err) {
			break
		}
	}

	return FallbackMessage(a.Engine.Name(), Classify(lastErr), lastErr), false
}

func (a *Adapter) generateOnce(ctx context.Context, prompt string) (string, error) {
	if a.Policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Policy.Timeout)
		defer cancel()
	}
	return a.Engine.Generate(ctx, prompt)
}

func (a *Adapter) wait(ctx context.Context, d time.Duration) error {
	if a.sleep != nil {
		return a.sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

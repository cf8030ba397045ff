package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Kind names a provider failure condition. String matching on provider
// error payloads is fragile, so it lives here and nowhere else.
type Kind string

const (
	KindUnknown    Kind = "unknown"
	KindTimeout    Kind = "timeout"
	KindRateLimit  Kind = "rate_limit"
	KindOverloaded Kind = "overloaded"
	KindQuota      Kind = "quota"
	KindSafety     Kind = "safety"
	KindAPIKey     Kind = "api_key"
	KindEmpty      Kind = "empty"
)

// ProviderError is a classified failure from one provider call.
type ProviderError struct {
	Engine  string
	Kind    Kind
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Engine, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Engine, e.Kind, e.Message)
}

// NewProviderError builds a ProviderError.
func NewProviderError(engine string, kind Kind, status int, message string) *ProviderError {
	return &ProviderError{Engine: engine, Kind: kind, Status: status, Message: message}
}

// ClassifyProviderMessage maps a raw provider error body to a Kind by
// substring match. Provider message changes only require touching this
// function.
func ClassifyProviderMessage(message string) Kind {
	upper := strings.ToUpper(message)
	switch {
	case strings.Contains(upper, "SAFETY"):
		return KindSafety
	case strings.Contains(upper, "QUOTA"):
		return KindQuota
	case strings.Contains(upper, "API_KEY"), strings.Contains(upper, "API KEY"), strings.Contains(upper, "INVALID KEY"):
		return KindAPIKey
	case strings.Contains(upper, "RATE LIMIT"), strings.Contains(upper, "RATE_LIMIT"):
		return KindRateLimit
	case strings.Contains(upper, "OVERLOADED"), strings.Contains(upper, "UNAVAILABLE"):
		return KindOverloaded
	case strings.Contains(upper, "TIMEOUT"):
		return KindTimeout
	default:
		return KindUnknown
	}
}

// Classify resolves any error to a Kind, preferring typed provider
// errors over message inspection.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	if strings.Contains(err.Error(), "Client.Timeout") {
		return KindTimeout
	}
	return ClassifyProviderMessage(err.Error())
}

// IsTransient reports whether an error is worth another attempt.
func IsTransient(err error) bool {
	switch Classify(err) {
	case KindRateLimit, KindOverloaded:
		return true
	default:
		return false
	}
}

// Package sessions tracks in-flight streamed analyses: an ephemeral
// TTL-bound record per run, a pluggable store, the background task
// that advances progress milestones and the SSE surface that serves
// them to clients.
package sessions

import "time"

// TTL is how long a session stays retrievable after creation.
const TTL = 30 * time.Minute

// Session is one in-progress streamed analysis. Records are replaced
// whole on every update, never mutated in place, so concurrent readers
// always observe a consistent snapshot.
type Session struct {
	SessionID      string    `json:"sessionId"`
	BusinessName   string    `json:"businessName"`
	Prompt         string    `json:"prompt"`
	Progress       int       `json:"progress"`
	ChatGPTContent string    `json:"chatgptContent"`
	GeminiContent  string    `json:"geminiContent"`
	IsComplete     bool      `json:"isComplete"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// Expired reports whether the session has outlived its TTL at the
// given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

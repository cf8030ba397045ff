package sessions

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Store persists analysis sessions. Implementations must treat expired
// sessions as absent on Get so callers never observe a stale run.
type Store interface {
	// Put inserts or fully replaces a session.
	Put(ctx context.Context, s Session) error
	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, sessionID string) (Session, error)
	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

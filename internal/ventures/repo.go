package ventures

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no venture matches the query.
var ErrNotFound = errors.New("venture not found")

// Repo defines persistence operations for ventures. A venture is
// written at most twice per analysis: create, then update-with-results.
type Repo interface {
	Create(ctx context.Context, venture Venture) error
	GetByVentureID(ctx context.Context, ventureID string) (Venture, error)
	UpdateResults(ctx context.Context, ventureID string, results []AIResult, scoring Scoring, status string) error
	ListByVentureID(ctx context.Context, ventureID string, limit int) ([]Venture, error)
	ListByEmail(ctx context.Context, email string, limit int) ([]Venture, error)
}

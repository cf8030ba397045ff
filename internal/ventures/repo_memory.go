package ventures

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores ventures in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Venture
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Venture)}
}

// Create stores the venture.
func (r *MemoryRepo) Create(ctx context.Context, venture Venture) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if venture.CreatedAt.IsZero() {
		venture.CreatedAt = now
	}
	venture.UpdatedAt = now
	r.byID[venture.VentureID] = venture
	return nil
}

// GetByVentureID returns a venture by its id.
func (r *MemoryRepo) GetByVentureID(ctx context.Context, ventureID string) (Venture, error) {
	if err := ctx.Err(); err != nil {
		return Venture{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	venture, ok := r.byID[ventureID]
	if !ok {
		return Venture{}, ErrNotFound
	}
	return venture, nil
}

// UpdateResults attaches AI results and scoring, advancing the status.
func (r *MemoryRepo) UpdateResults(ctx context.Context, ventureID string, results []AIResult, scoring Scoring, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	venture, ok := r.byID[ventureID]
	if !ok {
		return ErrNotFound
	}
	venture.AIResults = results
	venture.Scoring = scoring
	venture.Status = status
	venture.UpdatedAt = time.Now().UTC()
	r.byID[ventureID] = venture
	return nil
}

// ListByVentureID returns ventures matching the id, newest first.
func (r *MemoryRepo) ListByVentureID(ctx context.Context, ventureID string, limit int) ([]Venture, error) {
	return r.list(ctx, limit, func(v Venture) bool { return v.VentureID == ventureID })
}

// ListByEmail returns ventures for the given contact email, newest first.
func (r *MemoryRepo) ListByEmail(ctx context.Context, email string, limit int) ([]Venture, error) {
	return r.list(ctx, limit, func(v Venture) bool { return v.BasicInfo.Email == email })
}

func (r *MemoryRepo) list(ctx context.Context, limit int, match func(Venture) bool) ([]Venture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Venture, 0)
	for _, v := range r.byID {
		if match(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

package leads

import (
	"context"
	"sync"
)

// MemoryRepo stores leads in memory, newest last.
type MemoryRepo struct {
	mu    sync.RWMutex
	leads []Lead
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends the lead.
func (r *MemoryRepo) Create(ctx context.Context, lead Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lead.Answers = lead.Answers.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, lead)
	return nil
}

// UpdateCRMStatus records the CRM outcome of a stored lead.
func (r *MemoryRepo) UpdateCRMStatus(ctx context.Context, id, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leads {
		if r.leads[i].ID == id {
			r.leads[i].CRMStatus = status
			return nil
		}
	}
	return ErrNotFound
}

// ListRecent returns up to limit leads, newest first.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Lead, 0, min(limit, len(r.leads)))
	for i := len(r.leads) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.leads[i])
	}
	return out, nil
}

// Ping always succeeds.
func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

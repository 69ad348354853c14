package tracking

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo keeps events in memory.
type MemoryRepo struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Insert stores the event.
func (r *MemoryRepo) Insert(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// CountByType counts events created at or after since.
func (r *MemoryRepo) CountByType(ctx context.Context, since time.Time) (map[EventType]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[EventType]int)
	for _, e := range r.events {
		if e.CreatedAt.Before(since) {
			continue
		}
		out[e.Type]++
	}
	return out, nil
}

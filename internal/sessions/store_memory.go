package sessions

import (
	"context"
	"sync"
	"time"
)

const memorySweepInterval = time.Minute

// MemoryStore keeps sessions in process. Expired entries are dropped on
// lookup, and a sweep on writes clears the ones nobody asks for again.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	entries   map[string]memoryEntry
	lastSweep time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore constructs a MemoryStore. A zero ttl never expires.
func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		ttl:       ttl,
		now:       now,
		entries:   make(map[string]memoryEntry),
		lastSweep: now(),
	}
}

// Create stores a new session.
func (m *MemoryStore) Create(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	m.entries[s.ID] = m.entry(s)
	return nil
}

// Len returns the number of stored entries, expired ones not yet swept
// included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Get returns an unexpired session.
func (m *MemoryStore) Get(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(id)
	if !ok {
		return Session{}, ErrNotFound
	}
	return clone(e.session), nil
}

// Update runs fn under the store lock and refreshes the TTL.
func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	e, ok := m.lookup(id)
	if !ok {
		return Session{}, ErrNotFound
	}
	s := clone(e.session)
	if err := fn(&s); err != nil {
		return Session{}, err
	}
	m.entries[id] = m.entry(s)
	return clone(s), nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) lookup(id string) (memoryEntry, bool) {
	e, ok := m.entries[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *MemoryStore) sweep() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	if now.Sub(m.lastSweep) < memorySweepInterval {
		return
	}
	m.lastSweep = now
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}

func (m *MemoryStore) entry(s Session) memoryEntry {
	e := memoryEntry{session: clone(s)}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	return e
}

func clone(s Session) Session {
	s.Answers = s.Answers.Clone()
	return s
}

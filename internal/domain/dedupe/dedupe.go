// Package dedupe tracks pending recompute requests so that duplicates for
// the same meeting collapse while one is already queued.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Tracker records pending meeting IDs for at-most-once queuing.
type Tracker interface {
	// SeenAndRecord atomically checks if id is pending and records it if not.
	// Returns true if id was already pending, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID from the pending set. Called when the queued
	// run starts (so later requests trigger a fresh run) or when enqueueing
	// failed after the ID was recorded.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryTracker implements Tracker with a bounded map. When the bound is
// reached the insertion-oldest entry is dropped; a dropped entry only means
// a redundant recompute may slip through, never a missed one.
type inMemoryTracker struct {
	mu      sync.Mutex
	pending map[string]uint64
	order   uint64
	maxSize int
	size    atomic.Int64
}

// Default bound on tracked IDs.
const defaultMaxSize = 10000

// NewInMemoryTracker creates a new in-memory tracker with configuration
// options.
func NewInMemoryTracker(opts ...Option) Tracker {
	t := &inMemoryTracker{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.pending = make(map[string]uint64)
	return t
}

func (t *inMemoryTracker) SeenAndRecord(_ context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.pending[id]; exists {
		return true
	}

	if t.maxSize > 0 && len(t.pending) >= t.maxSize {
		t.evictOldest()
	}

	t.order++
	t.pending[id] = t.order
	t.size.Store(int64(len(t.pending)))
	return false
}

func (t *inMemoryTracker) Unrecord(_ context.Context, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.pending, id)
	t.size.Store(int64(len(t.pending)))
}

func (t *inMemoryTracker) Size() int64 {
	return t.size.Load()
}

// evictOldest removes the entry with the smallest insertion order.
// Called with the mutex held.
func (t *inMemoryTracker) evictOldest() {
	var oldestID string
	var oldest uint64
	first := true
	for id, ord := range t.pending {
		if first || ord < oldest {
			oldestID, oldest = id, ord
			first = false
		}
	}
	if !first {
		delete(t.pending, oldestID)
	}
}

// Package dedupe tracks pending recompute requests.
package dedupe

// Option applies a configuration option to the inMemoryTracker.
type Option func(*inMemoryTracker)

// WithMaxSize bounds the number of tracked IDs. Zero or negative means
// unbounded.
func WithMaxSize(size int) Option {
	return func(t *inMemoryTracker) {
		t.maxSize = size
	}
}

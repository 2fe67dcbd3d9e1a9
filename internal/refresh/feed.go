package refresh

import (
	"context"
	"slices"
	"sync"
)

// Feed keeps the most recently published result in memory.
type Feed struct {
	mu     sync.RWMutex
	latest Result
	ok     bool
}

// Publish replaces the stored result.
func (f *Feed) Publish(_ context.Context, r Result) error {
	r.Alerts = slices.Clone(r.Alerts)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = r
	f.ok = true
	return nil
}

// Latest returns a copy of the stored result and whether any run has
// published yet.
func (f *Feed) Latest() (Result, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	r := f.latest
	r.Alerts = slices.Clone(r.Alerts)
	return r, f.ok
}

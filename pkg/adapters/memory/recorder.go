package memory

import (
	"context"
	"sync"

	"github.com/jesterworks/canopy/pkg/domain"
)

// Recorder implements ports.Recorder as a fixed-capacity ring buffer.
// The oldest snapshot is evicted once capacity is reached.
// Safe for concurrent use so debug surfaces can read while the game ticks.
type Recorder struct {
	mu    sync.RWMutex
	buf   []domain.Snapshot
	head  int // index of the next write
	count int
}

// DefaultCapacity is used when NewRecorder is given a non-positive size.
const DefaultCapacity = 256

// NewRecorder creates a ring-buffer recorder holding up to capacity
// snapshots.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{buf: make([]domain.Snapshot, capacity)}
}

// Record appends a snapshot, evicting the oldest when full.
func (r *Recorder) Record(ctx context.Context, snap domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy the active slice so later caller mutation can't reach the buffer.
	cp := snap
	cp.Active = append([]string(nil), snap.Active...)

	r.buf[r.head] = cp
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	return nil
}

// Recent returns up to n snapshots, newest first.
func (r *Recorder) Recent(ctx context.Context, n int) ([]domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil, domain.ErrNoHistory
	}
	if n <= 0 || n > r.count {
		n = r.count
	}

	out := make([]domain.Snapshot, 0, n)
	for i := 1; i <= n; i++ {
		idx := (r.head - i + len(r.buf)) % len(r.buf)
		out = append(out, r.buf[idx])
	}
	return out, nil
}

// Clear drops all recorded history.
func (r *Recorder) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = 0
	r.count = 0
	return nil
}

// Len returns the number of retained snapshots.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

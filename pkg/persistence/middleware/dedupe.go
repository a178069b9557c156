package middleware

import (
	"context"
	"slices"
	"sync"

	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/ports"
)

type dedupeMiddleware struct {
	next ports.Recorder

	mu       sync.Mutex
	seeded   bool
	lastSeen []string
}

// NewDedupeMiddleware creates a middleware that drops snapshots whose active
// set is unchanged since the last recorded one. A steady-state system ticking
// at 30Hz would otherwise write identical history entries every tick; with
// dedupe the sink only sees transitions. The first snapshot always passes.
func NewDedupeMiddleware() Middleware {
	return func(next ports.Recorder) ports.Recorder {
		return &dedupeMiddleware{next: next}
	}
}

func (m *dedupeMiddleware) Record(ctx context.Context, snap domain.Snapshot) error {
	m.mu.Lock()
	if m.seeded && slices.Equal(m.lastSeen, snap.Active) {
		m.mu.Unlock()
		return nil
	}
	m.seeded = true
	m.lastSeen = slices.Clone(snap.Active)
	m.mu.Unlock()

	return m.next.Record(ctx, snap)
}

func (m *dedupeMiddleware) Recent(ctx context.Context, n int) ([]domain.Snapshot, error) {
	return m.next.Recent(ctx, n)
}

func (m *dedupeMiddleware) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.seeded = false
	m.lastSeen = nil
	m.mu.Unlock()

	return m.next.Clear(ctx)
}

package middleware_test

import (
	"context"

	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/ports"
)

// MockRecorder is an append-only in-memory recorder for testing middleware.
type MockRecorder struct {
	entries []domain.Snapshot
}

var _ ports.Recorder = (*MockRecorder)(nil)

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

func (m *MockRecorder) Record(_ context.Context, snap domain.Snapshot) error {
	m.entries = append(m.entries, snap)
	return nil
}

func (m *MockRecorder) Recent(_ context.Context, n int) ([]domain.Snapshot, error) {
	if len(m.entries) == 0 {
		return nil, domain.ErrNoHistory
	}
	if n <= 0 || n > len(m.entries) {
		n = len(m.entries)
	}
	out := make([]domain.Snapshot, 0, n)
	for i := len(m.entries) - 1; i >= len(m.entries)-n; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *MockRecorder) Clear(_ context.Context) error {
	m.entries = nil
	return nil
}

package ports

import (
	"context"

	"github.com/jesterworks/canopy/pkg/domain"
)

// Recorder receives one snapshot per tick: the active-capability set after
// the evaluation pass. Implementations decide retention (ring buffer,
// redis list, ...). Record is called on the tick thread and should be
// cheap; slow sinks should buffer internally.
type Recorder interface {
	// Record appends a snapshot.
	Record(ctx context.Context, snap domain.Snapshot) error

	// Recent returns up to n snapshots, newest first.
	// Returns domain.ErrNoHistory when nothing has been recorded.
	Recent(ctx context.Context, n int) ([]domain.Snapshot, error)

	// Clear drops all recorded history.
	Clear(ctx context.Context) error
}

package ports

import (
	"context"
	"testing"
	"time"

	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRecorderContract runs a suite of tests verifying that a Recorder
// implementation adheres to the interface contract. Adapter packages call
// it from their own tests against a fresh, empty recorder.
func RunRecorderContract(t *testing.T, rec Recorder) {
	ctx := context.Background()

	snap := func(tick uint64, active ...string) domain.Snapshot {
		return domain.Snapshot{
			Tick:     tick,
			Time:     float64(tick) * 0.016,
			Active:   active,
			Recorded: time.Now().UTC(),
		}
	}

	t.Run("Recent on empty", func(t *testing.T) {
		_, err := rec.Recent(ctx, 10)
		assert.ErrorIs(t, err, domain.ErrNoHistory)
	})

	t.Run("Record and Recent", func(t *testing.T) {
		require.NoError(t, rec.Record(ctx, snap(1, "idle")))
		require.NoError(t, rec.Record(ctx, snap(2, "idle", "sprint")))
		require.NoError(t, rec.Record(ctx, snap(3, "sprint")))

		got, err := rec.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)

		// Newest first.
		assert.Equal(t, uint64(3), got[0].Tick)
		assert.Equal(t, []string{"sprint"}, got[0].Active)
		assert.Equal(t, uint64(2), got[1].Tick)
	})

	t.Run("Recent larger than history", func(t *testing.T) {
		got, err := rec.Recent(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, rec.Clear(ctx))
		_, err := rec.Recent(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrNoHistory)
	})
}

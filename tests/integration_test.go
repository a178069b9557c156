// Package tests holds end-to-end suites exercising the public surface the
// way an embedding game would: YAML sheets in, ticks through the facade,
// history and debug HTTP out.
package tests

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jesterworks/canopy"
	httpAdapter "github.com/jesterworks/canopy/pkg/adapters/http"
	redisAdapter "github.com/jesterworks/canopy/pkg/adapters/redis"
	"github.com/jesterworks/canopy/pkg/adapters/scripted"
	"github.com/jesterworks/canopy/pkg/input"
)

const playerSheet = `
capabilities:
  - name: regen
    tags: [system.regen]
    params:
      enable_after: 1.0
sheets:
  - name: locomotion
    policy: first_valid
    capabilities:
      - name: sprint
        tags: [movement.sprint]
        params:
          action: sprint
          duration: 2.0
          cooldown: 1.0
      - name: walk
        tags: [movement.walk]
`

func newPlayerSystem(t *testing.T, opts ...canopy.Option) (*canopy.System, *input.States) {
	t.Helper()
	registry, err := scripted.Parse([]byte(playerSheet))
	require.NoError(t, err)

	actions := input.NewStates()
	sys, err := canopy.New(registry,
		append([]canopy.Option{canopy.WithName("player"), canopy.WithActions(actions)}, opts...)...)
	require.NoError(t, err)
	return sys, actions
}

func tickFor(sys *canopy.System, actions *input.States, ticks int, dt float64) {
	ctx := context.Background()
	for i := 0; i < ticks; i++ {
		sys.Tick(ctx, dt)
		actions.EndTick()
	}
}

// The full gameplay loop: time-gated activation, action-driven preemption,
// duration expiry, and the cooldown window, all through the public facade.
func TestGameplayLoop(t *testing.T) {
	sys, actions := newPlayerSystem(t)

	// Before the enable_after gate only walk is active.
	tickFor(sys, actions, 5, 0.1)
	assert.Equal(t, []string{"walk"}, sys.Active())
	assert.False(t, sys.IsEnabled("regen"))

	// Past one second regen joins in.
	tickFor(sys, actions, 6, 0.1)
	assert.True(t, sys.IsEnabled("regen"))
	assert.True(t, sys.IsEnabled("walk"))

	// Holding sprint preempts walk inside the first_valid sheet.
	actions.Press("sprint")
	tickFor(sys, actions, 1, 0.1)
	assert.True(t, sys.IsEnabled("sprint"))
	assert.False(t, sys.IsEnabled("walk"))

	// Sprint expires after its two-second duration even while held.
	tickFor(sys, actions, 21, 0.1)
	assert.False(t, sys.IsEnabled("sprint"))
	assert.True(t, sys.IsEnabled("walk"))

	// The cooldown refuses re-activation until a second has passed.
	tickFor(sys, actions, 3, 0.1)
	assert.False(t, sys.IsEnabled("sprint"))
	tickFor(sys, actions, 10, 0.1)
	assert.True(t, sys.IsEnabled("sprint"))
}

// Blocking a parent tag suppresses activation of every capability tagged
// underneath it. Blocks gate activation only, so they are installed before
// the capabilities have a chance to enable.
func TestHierarchicalBlocking(t *testing.T) {
	sys, actions := newPlayerSystem(t)

	sys.Block("stunned", "movement")
	actions.Press("sprint")
	tickFor(sys, actions, 12, 0.1)
	assert.False(t, sys.IsEnabled("sprint"), "movement block must cover movement.sprint")
	assert.False(t, sys.IsEnabled("walk"), "movement block must cover movement.walk")
	assert.True(t, sys.IsEnabled("regen"), "system.regen is outside the blocked subtree")

	sys.Unblock("stunned")
	tickFor(sys, actions, 1, 0.1)
	assert.True(t, sys.IsEnabled("sprint"))
}

// History flows through the Redis recorder and back out of the debug API.
func TestHistoryThroughRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	recorder := redisAdapter.NewFromClient(client, redisAdapter.WithLimit(64))

	sys, actions := newPlayerSystem(t, canopy.WithRecorder(recorder))
	tickFor(sys, actions, 3, 0.1)

	snaps, err := recorder.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, uint64(3), snaps[0].Tick, "newest snapshot first")
	assert.Contains(t, snaps[0].Active, "walk")

	handler := httpAdapter.NewHandler(sys, httpAdapter.WithHistory(recorder))
	req := httptest.NewRequest("GET", "/history?limit=2", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var payload []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload, 2)
}

// The debug API mutates the same block list the tick loop consults. The
// block goes in before the first tick, since blocks only gate activation.
func TestBlocksThroughDebugAPI(t *testing.T) {
	sys, actions := newPlayerSystem(t)
	handler := httpAdapter.NewHandler(sys)

	body := strings.NewReader(`{"reason": "cutscene", "tags": ["movement"]}`)
	req := httptest.NewRequest("POST", "/blocks", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, 204, rec.Code)

	tickFor(sys, actions, 1, 0.1)
	assert.NotContains(t, sys.Active(), "walk")

	req = httptest.NewRequest("DELETE", "/blocks/cutscene", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, 204, rec.Code)

	tickFor(sys, actions, 1, 0.1)
	assert.Contains(t, sys.Active(), "walk")
}

// The mermaid rendering of a live system reflects its current active set.
func TestGraphRendering(t *testing.T) {
	sys, actions := newPlayerSystem(t)
	tickFor(sys, actions, 1, 0.1)

	handler := httpAdapter.NewHandler(sys)
	req := httptest.NewRequest("GET", "/graph?format=mermaid", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "walk")
	assert.Contains(t, out, "classDef active", "active overlay expected while walk is enabled")
}

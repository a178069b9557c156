// Package cli wires capability systems together with standard command-line
// conventions: sheet loading, history storage selection, debug logging, and
// the simulation loop shared by the run and graph commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jesterworks/canopy"
	"github.com/jesterworks/canopy/internal/logging"
	"github.com/jesterworks/canopy/pkg/adapters/memory"
	redisAdapter "github.com/jesterworks/canopy/pkg/adapters/redis"
	"github.com/jesterworks/canopy/pkg/adapters/scripted"
	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/input"
	"github.com/jesterworks/canopy/pkg/observability"
	"github.com/jesterworks/canopy/pkg/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// Options describes how to assemble a system from the command line.
type Options struct {
	// SheetPath is the YAML sheet file to load capabilities from.
	SheetPath string
	// Debug enables stderr logging and per-transition debug hooks.
	Debug bool
	// RedisAddr selects the Redis history store; empty keeps history
	// in process memory.
	RedisAddr string
	// HistoryLimit bounds retained history snapshots.
	HistoryLimit int
	// Metrics registers Prometheus collectors on the default registry.
	Metrics bool
}

// Build holds an assembled system and the pieces commands need next to it.
type Build struct {
	System   *canopy.System
	Actions  *input.States
	Recorder ports.Recorder
	Logger   *slog.Logger
}

// NewLogger configures the application logger. In debug mode it writes to
// stderr, keeping stdout clean for trace and graph output.
func NewLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// NewSystem initializes a capability system with standard CLI conventions.
func NewSystem(opts Options) (*Build, error) {
	logger := NewLogger(opts.Debug)

	registry, err := scripted.Load(opts.SheetPath)
	if err != nil {
		return nil, err
	}

	actions := input.NewStates()
	var recorder ports.Recorder
	if opts.RedisAddr != "" {
		recorder = redisAdapter.New(opts.RedisAddr, "", 0,
			redisAdapter.WithLimit(int64(opts.HistoryLimit)))
	} else {
		recorder = memory.NewRecorder(opts.HistoryLimit)
	}

	sysOpts := []canopy.Option{
		canopy.WithName(filepath.Base(opts.SheetPath)),
		canopy.WithLogger(logger),
		canopy.WithActions(actions),
		canopy.WithRecorder(recorder),
	}
	if opts.Debug {
		sysOpts = append(sysOpts, canopy.WithLifecycleHooks(createDebugHooks(logger)))
	}
	if opts.Metrics {
		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		sysOpts = append(sysOpts, canopy.WithLifecycleHooks(metrics.Hooks()))
	}

	sys, err := canopy.New(registry, sysOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing system: %w", err)
	}

	return &Build{System: sys, Actions: actions, Recorder: recorder, Logger: logger}, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActivated: func(ctx context.Context, e *domain.CapabilityEvent) {
			logger.Debug("Capability Activated", "name", e.Name, "tick", e.Tick)
		},
		OnDeactivated: func(ctx context.Context, e *domain.CapabilityEvent) {
			logger.Debug("Capability Deactivated", "name", e.Name, "tick", e.Tick)
		},
		OnBlocked: func(ctx context.Context, e *domain.CapabilityEvent) {
			logger.Debug("Capability Blocked", "name", e.Name, "tags", e.Tags.Strings())
		},
		OnTickEnd: func(ctx context.Context, e *domain.TickEvent) {
			logger.Debug("Tick Complete", "tick", e.Tick, "active", e.Active, "duration", e.Duration)
		},
	}
}

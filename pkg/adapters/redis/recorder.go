// Package redis provides a history recorder backed by a Redis list,
// letting debug tooling inspect capability history from outside the game
// process.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jesterworks/canopy/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Recorder implements ports.Recorder on a Redis list. Snapshots are
// LPUSHed so index 0 is always the newest, and the list is trimmed to a
// bounded length on every write.
type Recorder struct {
	client *backend.Client
	key    string
	limit  int64
	ttl    time.Duration
}

// Option configures the recorder.
type Option func(*Recorder)

// WithKey overrides the list key (default "canopy:history").
func WithKey(key string) Option {
	return func(r *Recorder) { r.key = key }
}

// WithLimit bounds the retained history length (default 512).
func WithLimit(n int64) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithTTL expires the whole history key after inactivity.
func WithTTL(ttl time.Duration) Option {
	return func(r *Recorder) { r.ttl = ttl }
}

// New creates a recorder with its own client.
func New(address, password string, db int, opts ...Option) *Recorder {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a recorder from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Recorder {
	r := &Recorder{
		client: client,
		key:    "canopy:history",
		limit:  512,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends a snapshot and trims the list to the configured limit.
func (r *Recorder) Record(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.LPush(ctx, r.key, data)
	pipe.LTrim(ctx, r.key, 0, r.limit-1)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	return nil
}

// Recent returns up to n snapshots, newest first.
func (r *Recorder) Recent(ctx context.Context, n int) ([]domain.Snapshot, error) {
	if n <= 0 {
		n = int(r.limit)
	}
	vals, err := r.client.LRange(ctx, r.key, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if len(vals) == 0 {
		return nil, domain.ErrNoHistory
	}

	out := make([]domain.Snapshot, 0, len(vals))
	for _, v := range vals {
		var snap domain.Snapshot
		if err := json.Unmarshal([]byte(v), &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, nil
}

// Clear drops the whole history list.
func (r *Recorder) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

// Close closes the underlying client.
func (r *Recorder) Close() error {
	return r.client.Close()
}

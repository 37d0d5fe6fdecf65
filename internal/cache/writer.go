// Package cache writes computed bet states to Redis so clients polling a live
// round don't force a recompute-plus-database-read on every request. The cache
// is never authoritative: entries are JSON snapshots with short TTLs, and a
// miss simply falls through to a fresh computation. Because the engine always
// recomputes full state from scores, overwriting an entry is always safe.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	BetStateTTL   = 2 * time.Hour // live rounds: refreshed on every score anyway
	SettlementTTL = 10 * time.Minute
)

// Writer handles writing computed bet states to Redis. A nil Writer (or a
// Writer around a nil client) is valid and turns every operation into a no-op,
// so handlers don't need to care whether Redis is configured.
type Writer struct {
	client *redis.Client
}

// NewWriter creates a cache writer. addr is host:port; empty returns a
// disabled writer.
func NewWriter(addr string) *Writer {
	if addr == "" {
		return &Writer{}
	}
	return &Writer{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Enabled reports whether a Redis connection is configured.
func (w *Writer) Enabled() bool {
	return w != nil && w.client != nil
}

func betStateKey(roundID, betID uuid.UUID) string {
	return fmt.Sprintf("round:%s:bet:%s:state", roundID, betID)
}

// WriteBetState stores a computed bet state snapshot as JSON.
func (w *Writer) WriteBetState(ctx context.Context, roundID, betID uuid.UUID, state interface{}) error {
	if !w.Enabled() {
		return nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling bet state: %w", err)
	}
	return w.client.Set(ctx, betStateKey(roundID, betID), data, BetStateTTL).Err()
}

// ReadBetState fetches a cached bet state snapshot. The second return is false
// on a miss (or when caching is disabled) — callers recompute in that case.
func (w *Writer) ReadBetState(ctx context.Context, roundID, betID uuid.UUID, out interface{}) (bool, error) {
	if !w.Enabled() {
		return false, nil
	}
	data, err := w.client.Get(ctx, betStateKey(roundID, betID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("unmarshaling bet state: %w", err)
	}
	return true, nil
}

// InvalidateRound drops every cached bet state for a round. Called when a
// score lands so stale snapshots never outlive the scores they summarize.
func (w *Writer) InvalidateRound(ctx context.Context, roundID uuid.UUID) error {
	if !w.Enabled() {
		return nil
	}
	pattern := fmt.Sprintf("round:%s:bet:*", roundID)
	iter := w.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return w.client.Del(ctx, keys...).Err()
}

// WriteSettlement stores a trip's settlement summary.
func (w *Writer) WriteSettlement(ctx context.Context, tripID uuid.UUID, settlement interface{}) error {
	if !w.Enabled() {
		return nil
	}
	data, err := json.Marshal(settlement)
	if err != nil {
		return fmt.Errorf("marshaling settlement: %w", err)
	}
	key := fmt.Sprintf("trip:%s:settlement", tripID)
	return w.client.Set(ctx, key, data, SettlementTTL).Err()
}

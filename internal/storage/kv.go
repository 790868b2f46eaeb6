package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/clock"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
)

// UsageInfo is the Store-level view of medium usage.
type UsageInfo struct {
	TotalBytes int64     `json:"total_bytes"`
	ItemCount  int       `json:"item_count"`
	LastSaveAt time.Time `json:"last_save_at"`
}

// Store is the durable key/value store. It owns JSON (de)serialization and
// the graceful-degradation contract: a write that hits a full medium gets one
// remediation pass (dropping expired cached data) and one retry; a read that
// hits corrupt data reports a miss so callers fall back to defaults.
type Store struct {
	backend Backend
	clock   clock.Clock
	logger  *slog.Logger
}

// NewStore creates a Store on top of the given backend.
func NewStore(backend Backend, clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		backend: backend,
		clock:   clk,
		logger:  logger,
	}
}

// Put serializes value and writes it under key. On model.ErrStoreFull it
// remediates once and retries exactly once before reporting the failure.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	err = s.backend.Put(ctx, key, data)
	if errors.Is(err, model.ErrStoreFull) {
		s.remediate(ctx)
		err = s.backend.Put(ctx, key, data)
	}
	if err != nil {
		return err
	}

	if key != KeyLastSave {
		s.touchLastSave(ctx)
	}
	return nil
}

// Get reads key into out. A missing key and corrupt stored JSON both report
// model.ErrKeyNotFound; deserialization failures never reach the caller.
func (s *Store) Get(ctx context.Context, key string, out any) error {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("discarding corrupt stored value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return model.ErrKeyNotFound
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

// Usage reports medium usage and the last successful save time.
func (s *Store) Usage(ctx context.Context) (UsageInfo, error) {
	usage, err := s.backend.Usage(ctx)
	if err != nil {
		return UsageInfo{}, err
	}

	info := UsageInfo{
		TotalBytes: usage.TotalBytes,
		ItemCount:  usage.ItemCount,
	}
	// Last save time is best-effort; a missing key just leaves it zero.
	_ = s.Get(ctx, KeyLastSave, &info.LastSaveAt)
	return info, nil
}

// ClearAll wipes the entire store.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.backend.Clear(ctx)
}

// remediate is the one-time cleanup performed before retrying a failed
// write: expired roster caches and stale snapshots are dead weight.
func (s *Store) remediate(ctx context.Context) {
	now := s.clock.Now()
	dropped := 0

	var roster model.Roster
	if err := s.Get(ctx, KeyRoster, &roster); err == nil && roster.Expired(now) {
		_ = s.backend.Delete(ctx, KeyRoster)
		dropped++
	}

	var snap model.Snapshot
	if err := s.Get(ctx, KeySnapshot, &snap); err == nil && now.Sub(snap.SavedAt) > model.SnapshotTTL {
		_ = s.backend.Delete(ctx, KeySnapshot)
		dropped++
	}

	s.logger.Info("storage remediation pass completed", slog.Int("dropped", dropped))
}

func (s *Store) touchLastSave(ctx context.Context) {
	if err := s.Put(ctx, KeyLastSave, s.clock.Now()); err != nil {
		s.logger.Warn("could not record last save time", slog.String("error", err.Error()))
	}
}

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/clock"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/scorelog"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage"
)

// Decider resolves the restore-or-discard choice for a recent snapshot
// found at startup. Decide blocks until the choice is made; returning true
// replays the snapshot into live state, false discards it.
type Decider interface {
	Decide(ctx context.Context, snap *model.Snapshot) (bool, error)
}

// Manager owns the canonical in-memory match state. All mutation goes
// through it; the dirty flag tracks divergence from the last persist and
// only a successful Flush clears it.
type Manager struct {
	mu       sync.Mutex
	store    *storage.Store
	scorelog *scorelog.Service
	clock    clock.Clock
	logger   *slog.Logger

	snap  *model.Snapshot
	dirty bool
}

// NewManager creates a session manager with fresh default state.
func NewManager(store *storage.Store, log *scorelog.Service, clk clock.Clock, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		scorelog: log,
		clock:    clk,
		logger:   logger,
		snap:     model.NewSnapshot(),
	}
}

// Load reads the persisted snapshot into live state. It always succeeds:
// a miss, corrupt data, or a snapshot past its TTL all fall back to fresh
// defaults.
func (m *Manager) Load(ctx context.Context) *model.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var snap model.Snapshot
	if err := m.store.Get(ctx, storage.KeySnapshot, &snap); err != nil {
		m.snap = model.NewSnapshot()
		m.dirty = false
		return m.snap.Clone()
	}

	if m.clock.Now().Sub(snap.SavedAt) > model.SnapshotTTL {
		m.logger.Info("discarding expired snapshot",
			slog.Time("saved_at", snap.SavedAt))
		m.snap = model.NewSnapshot()
		m.dirty = false
		return m.snap.Clone()
	}

	snap.Normalize()
	m.snap = &snap
	m.dirty = false
	return m.snap.Clone()
}

// Restore runs the startup restoration protocol. A snapshot saved within
// the restore window triggers the decider; everything older is discarded
// without a prompt. The call blocks until the decision resolves, because
// the rest of initialization depends on its outcome. A cancelled decision
// leaves fresh defaults in place and reports the error.
func (m *Manager) Restore(ctx context.Context, decider Decider) (bool, error) {
	snap := m.Load(ctx)

	if snap.SavedAt.IsZero() {
		// Fresh defaults; nothing worth prompting about.
		return false, nil
	}

	age := m.clock.Now().Sub(snap.SavedAt)
	if age > model.RestoreWindow {
		m.logger.Info("snapshot too old to offer restore",
			slog.Duration("age", age))
		m.Reset(ctx)
		return false, nil
	}

	keep, err := decider.Decide(ctx, snap)
	if err != nil {
		m.mu.Lock()
		m.snap = model.NewSnapshot()
		m.dirty = false
		m.mu.Unlock()
		return false, err
	}

	if !keep {
		m.Reset(ctx)
		return false, nil
	}

	m.mu.Lock()
	// Re-derive the projections; stored totals and markers are never
	// trusted across a reload.
	scorelog.Rebuild(m.snap)
	m.dirty = true
	m.mu.Unlock()
	return true, nil
}

// MarkDirty flags the in-memory state as diverged from the last persist.
func (m *Manager) MarkDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = true
}

// Flush persists the snapshot if dirty. It reports success; on failure the
// dirty flag stays set so a later flush retries, and the in-memory snapshot
// remains authoritative. Flushing clean state is a no-op that reports true.
func (m *Manager) Flush(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return true
	}

	m.snap.SavedAt = m.clock.Now()
	if err := m.store.Put(ctx, storage.KeySnapshot, m.snap); err != nil {
		m.logger.Warn("flush failed, keeping state dirty",
			slog.String("error", err.Error()))
		return false
	}

	m.dirty = false
	return true
}

// RunAutoFlush flushes on a fixed interval until ctx is done, then makes a
// final flush so shutdown never loses acknowledged state.
func (m *Manager) RunAutoFlush(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Flush(context.WithoutCancel(ctx))
			return
		case <-ticker.C:
			m.Flush(ctx)
		}
	}
}

// Snapshot returns a copy of the current state for readers.
func (m *Manager) Snapshot() *model.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Clone()
}

// Dirty reports whether in-memory state has diverged from the last persist.
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// AppendPoint records a score and marks the session dirty.
func (m *Manager) AppendPoint(letter model.TeamLetter, scorer, assist string) (model.PointEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, err := m.scorelog.Append(m.snap, letter, scorer, assist)
	if err != nil {
		return model.PointEntry{}, err
	}
	m.dirty = true
	return entry, nil
}

// UpdatePoint edits an entry's scorer and assist.
func (m *Manager) UpdatePoint(id, scorer, assist string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.scorelog.Edit(m.snap, id, scorer, assist); err != nil {
		return err
	}
	m.dirty = true
	return nil
}

// RemovePoint deletes an entry and returns it. Deleting triggers a full
// rebuild of totals and markers.
func (m *Manager) RemovePoint(id string) (model.PointEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, err := m.scorelog.Delete(m.snap, id)
	if err != nil {
		return model.PointEntry{}, err
	}
	m.dirty = true
	return removed, nil
}

// SetTeams updates the team names and rosters. Existing log entries keep
// the names they were recorded under.
func (m *Manager) SetTeams(aName, bName, aRoster, bRoster string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if aName != "" {
		m.snap.TeamAName = aName
	}
	if bName != "" {
		m.snap.TeamBName = bName
	}
	m.snap.TeamARoster = aRoster
	m.snap.TeamBRoster = bRoster
	m.dirty = true
}

// SetPossessionStart changes the starting side and rebuilds the markers,
// which are all derived from it.
func (m *Manager) SetPossessionStart(side model.Side) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap.PossessionStart = side
	scorelog.Rebuild(m.snap)
	m.dirty = true
}

// SetClockLabel updates the display label for the match clock.
func (m *Manager) SetClockLabel(label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.ClockLabel = label
	m.dirty = true
}

// Reset replaces the snapshot with fresh defaults and drops the persisted
// copy. Used for an explicit new match and after a successful export.
func (m *Manager) Reset(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap = model.NewSnapshot()
	m.dirty = false
	if err := m.store.Remove(ctx, storage.KeySnapshot); err != nil {
		m.logger.Warn("could not remove persisted snapshot",
			slog.String("error", err.Error()))
	}
}

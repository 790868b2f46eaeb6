package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/clock"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage"
)

const (
	// DefaultMatchDuration is the match clock's starting duration
	DefaultMatchDuration = 100 * time.Minute

	matchTickInterval = time.Second
)

// TickFunc receives display updates from a ticking timer.
type TickFunc func(remaining time.Duration, running bool)

// Countdown is the match clock: a countdown toward an absolute wall-clock
// target. The target survives reloads, so time that passes while the app is
// closed is accounted for. Once expired the clock goes idle but keeps
// showing negative time; it is a countdown target, not a floor at zero.
type Countdown struct {
	mu     sync.Mutex
	store  *storage.Store
	clock  clock.Clock
	logger *slog.Logger

	defaultDur time.Duration
	endAt      *time.Time
	remaining  *time.Duration
	running    bool
	onTick     TickFunc
}

// NewCountdown creates a match clock in the idle state with the default
// duration remaining.
func NewCountdown(store *storage.Store, clk clock.Clock, defaultDur time.Duration, logger *slog.Logger) *Countdown {
	if defaultDur <= 0 {
		defaultDur = DefaultMatchDuration
	}
	rem := defaultDur
	return &Countdown{
		store:      store,
		clock:      clk,
		logger:     logger,
		defaultDur: defaultDur,
		remaining:  &rem,
	}
}

// SetTickFunc registers the display callback invoked on each tick.
func (t *Countdown) SetTickFunc(fn TickFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTick = fn
}

// Start begins (or resumes) the countdown. No-op while already running.
func (t *Countdown) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}

	now := t.clock.Now()
	var end time.Time
	switch {
	case t.remaining != nil:
		end = now.Add(*t.remaining)
	case t.endAt != nil:
		// Restarting after a natural expiry keeps the original target.
		end = *t.endAt
	default:
		end = now.Add(t.defaultDur)
	}

	t.endAt = &end
	t.remaining = nil
	t.running = true
	t.persistLocked(ctx)
}

// Stop pauses the countdown, storing the clamped remaining time. A paused
// clock never stores negative time, even when stopped after expiry.
func (t *Countdown) Stop(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.endAt == nil {
		return
	}

	rem := t.endAt.Sub(t.clock.Now())
	if rem < 0 {
		rem = 0
	}
	t.remaining = &rem
	t.endAt = nil
	t.running = false
	t.persistLocked(ctx)
}

// Reset forces the idle state with the given number of minutes remaining,
// or the default duration when minutes is not positive.
func (t *Countdown) Reset(ctx context.Context, minutes int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	dur := time.Duration(minutes) * time.Minute
	if minutes <= 0 {
		dur = t.defaultDur
	}
	t.remaining = &dur
	t.endAt = nil
	t.running = false
	t.persistLocked(ctx)
}

// Remaining reports the current remaining time (negative once expired) and
// whether the clock is running.
func (t *Countdown) Remaining() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case t.endAt != nil:
		return t.endAt.Sub(t.clock.Now()), t.running
	case t.remaining != nil:
		return *t.remaining, false
	default:
		return t.defaultDur, false
	}
}

// State returns the persisted-state view of the clock.
func (t *Countdown) State() model.TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := model.TimerState{Running: t.running}
	if t.endAt != nil {
		end := *t.endAt
		state.EndAt = &end
	}
	if t.remaining != nil {
		ms := t.remaining.Milliseconds()
		state.RemainingMs = &ms
	}
	return state
}

// Restore recovers the clock from persisted state after a reload. A running
// clock resumes toward its original target; one that expired while the app
// was closed comes back idle showing overtime; a paused clock keeps its
// remaining time; anything else starts fresh at the default duration.
func (t *Countdown) Restore(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var running bool
	_ = t.store.Get(ctx, storage.KeyTimerRunning, &running)

	var end time.Time
	endErr := t.store.Get(ctx, storage.KeyTimerEnd, &end)

	var remMs int64
	remErr := t.store.Get(ctx, storage.KeyTimerRemaining, &remMs)

	switch {
	case endErr == nil:
		rem := end.Sub(t.clock.Now())
		switch {
		case running && rem > 0:
			t.endAt = &end
			t.remaining = nil
			t.running = true
		case rem <= 0:
			t.endAt = &end
			t.remaining = nil
			t.running = false
		default:
			// A target with the running flag lost: treat as paused.
			rem = max(rem, 0)
			t.endAt = nil
			t.remaining = &rem
			t.running = false
		}
	case remErr == nil:
		rem := time.Duration(remMs) * time.Millisecond
		t.endAt = nil
		t.remaining = &rem
		t.running = false
	default:
		rem := t.defaultDur
		t.endAt = nil
		t.remaining = &rem
		t.running = false
	}

	t.persistLocked(ctx)
}

// Run drives the 1Hz display tick until ctx is done. A tick always reads
// the clock's current state under the lock, so a tick scheduled before a
// stop or reset can never act on the superseded state.
func (t *Countdown) Run(ctx context.Context) {
	ticker := time.NewTicker(matchTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.advance(ctx)
		}
	}
}

// advance recomputes remaining time, handles the expiry transition, and
// notifies the display callback.
func (t *Countdown) advance(ctx context.Context) {
	t.mu.Lock()
	if t.endAt == nil {
		t.mu.Unlock()
		return
	}

	rem := t.endAt.Sub(t.clock.Now())
	if rem <= 0 && t.running {
		// Natural expiry: idle, but overtime stays visible.
		t.running = false
		t.persistLocked(ctx)
		t.logger.Info("match clock expired")
	}

	fn := t.onTick
	running := t.running
	t.mu.Unlock()

	if fn != nil {
		fn(rem, running)
	}
}

// persistLocked writes the three timer keys, each independently removable.
// Persistence failures only delay recovery; the in-memory clock stays
// authoritative.
func (t *Countdown) persistLocked(ctx context.Context) {
	if t.store == nil {
		return
	}

	var err error
	if t.endAt != nil {
		err = t.store.Put(ctx, storage.KeyTimerEnd, *t.endAt)
	} else {
		err = t.store.Remove(ctx, storage.KeyTimerEnd)
	}
	if err == nil {
		if t.remaining != nil {
			err = t.store.Put(ctx, storage.KeyTimerRemaining, t.remaining.Milliseconds())
		} else {
			err = t.store.Remove(ctx, storage.KeyTimerRemaining)
		}
	}
	if err == nil {
		err = t.store.Put(ctx, storage.KeyTimerRunning, t.running)
	}
	if err != nil {
		t.logger.Warn("could not persist match clock",
			slog.String("error", err.Error()))
	}
}

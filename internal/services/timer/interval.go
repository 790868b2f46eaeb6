package timer

import (
	"context"
	"sync"
	"time"

	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/clock"
)

const (
	// DefaultPointInterval is the between-points countdown duration
	DefaultPointInterval = 90 * time.Second

	// The interval timer ticks at 5Hz for snappier display feedback.
	intervalTickInterval = 200 * time.Millisecond
)

// Interval is the between-points countdown. Unlike the match clock it is
// never persisted (every startup begins fresh) and it clamps to zero when
// it runs out: it models a fixed possession interval, not a clock that can
// run into overtime.
type Interval struct {
	mu    sync.Mutex
	clock clock.Clock

	defaultDur time.Duration
	endAt      *time.Time
	remaining  *time.Duration
	running    bool
	onTick     TickFunc
}

// NewInterval creates an idle interval timer with the default duration.
func NewInterval(clk clock.Clock, defaultDur time.Duration) *Interval {
	if defaultDur <= 0 {
		defaultDur = DefaultPointInterval
	}
	rem := defaultDur
	return &Interval{
		clock:      clk,
		defaultDur: defaultDur,
		remaining:  &rem,
	}
}

// SetTickFunc registers the display callback invoked on each tick.
func (t *Interval) SetTickFunc(fn TickFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTick = fn
}

// Start begins the countdown. No-op while already running.
func (t *Interval) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}

	rem := t.defaultDur
	if t.remaining != nil {
		rem = *t.remaining
	}
	end := t.clock.Now().Add(rem)
	t.endAt = &end
	t.remaining = nil
	t.running = true
}

// Stop pauses the countdown with the clamped remaining time.
func (t *Interval) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	rem := t.endAt.Sub(t.clock.Now())
	if rem < 0 {
		rem = 0
	}
	t.remaining = &rem
	t.endAt = nil
	t.running = false
}

// Reset forces the idle state with the given number of seconds remaining,
// or the default duration when seconds is not positive.
func (t *Interval) Reset(seconds int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	dur := time.Duration(seconds) * time.Second
	if seconds <= 0 {
		dur = t.defaultDur
	}
	t.remaining = &dur
	t.endAt = nil
	t.running = false
}

// Remaining reports the clamped remaining time and whether the timer runs.
func (t *Interval) Remaining() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case t.running:
		rem := t.endAt.Sub(t.clock.Now())
		if rem < 0 {
			rem = 0
		}
		return rem, true
	case t.remaining != nil:
		return *t.remaining, false
	default:
		return t.defaultDur, false
	}
}

// Run drives the 5Hz display tick until ctx is done.
func (t *Interval) Run(ctx context.Context) {
	ticker := time.NewTicker(intervalTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.advance()
		}
	}
}

// advance recomputes remaining time, stopping at exactly zero on expiry.
func (t *Interval) advance() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}

	rem := t.endAt.Sub(t.clock.Now())
	if rem <= 0 {
		rem = 0
		zero := time.Duration(0)
		t.endAt = nil
		t.remaining = &zero
		t.running = false
	}

	fn := t.onTick
	running := t.running
	t.mu.Unlock()

	if fn != nil {
		fn(rem, running)
	}
}

package session

import (
	"context"
	"sync"

	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
)

// Gate is a Decider resolved externally, e.g. by an HTTP request or a CLI
// command. Decide publishes the pending snapshot and blocks until someone
// calls Resolve or the context ends.
type Gate struct {
	mu      sync.Mutex
	pending *model.Snapshot
	decided chan bool
}

// NewGate creates an unresolved Gate.
func NewGate() *Gate {
	return &Gate{decided: make(chan bool, 1)}
}

var _ Decider = (*Gate)(nil)

// Decide implements Decider.
func (g *Gate) Decide(ctx context.Context, snap *model.Snapshot) (bool, error) {
	g.mu.Lock()
	g.pending = snap.Clone()
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.pending = nil
		g.mu.Unlock()
	}()

	select {
	case keep := <-g.decided:
		return keep, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Pending returns the snapshot awaiting a decision, or nil.
func (g *Gate) Pending() *model.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return nil
	}
	return g.pending.Clone()
}

// Resolve answers the pending decision. It fails when no decision is
// pending or one was already submitted.
func (g *Gate) Resolve(keep bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending == nil {
		return model.ErrNoPendingRestore
	}

	select {
	case g.decided <- keep:
		return nil
	default:
		return model.ErrNoPendingRestore
	}
}

// StaticDecider always answers the same way; useful for non-interactive
// startup and tests.
type StaticDecider bool

// Decide implements Decider.
func (d StaticDecider) Decide(ctx context.Context, snap *model.Snapshot) (bool, error) {
	return bool(d), nil
}

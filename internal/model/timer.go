package model

import "time"

// TimerState is the persisted state of the match countdown. In a defined
// state exactly one of EndAt or RemainingMs is set: EndAt while the clock
// counts toward a wall-clock target, RemainingMs while it is paused.
type TimerState struct {
	EndAt       *time.Time `json:"end_at"`
	RemainingMs *int64     `json:"remaining_ms"`
	Running     bool       `json:"running"`
}

// Defined reports whether the state satisfies the one-of invariant.
func (t TimerState) Defined() bool {
	if t.Running {
		return t.EndAt != nil && t.RemainingMs == nil
	}
	return (t.EndAt != nil) != (t.RemainingMs != nil)
}

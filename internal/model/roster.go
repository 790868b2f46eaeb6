package model

import "time"

// RosterTTL is how long a fetched roster stays fresh. The expiry is embedded
// in the cached value and checked on read, not swept in the background.
const RosterTTL = 24 * time.Hour

// Roster is the cached team-to-players mapping from the roster source.
type Roster struct {
	Teams     map[string][]string `json:"teams"`
	FetchedAt time.Time           `json:"fetched_at"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// Expired reports whether the cached roster is past its embedded expiry.
func (r *Roster) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

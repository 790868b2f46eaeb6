package model

import "errors"

// Common errors used across the application
var (
	// Storage errors
	ErrKeyNotFound = errors.New("key not found")
	ErrStoreFull   = errors.New("storage is full")

	// Score log errors
	ErrPointNotFound = errors.New("point not found")
	ErrMissingScorer = errors.New("scorer is required")
	ErrMissingAssist = errors.New("assist is required")
	ErrUnknownTeam   = errors.New("unknown team")

	// Session errors
	ErrNoPendingRestore = errors.New("no restore decision is pending")

	// Roster errors
	ErrRosterUnavailable = errors.New("roster unavailable")

	// Export errors
	ErrSinkNotConfigured = errors.New("submission sink not configured")
)

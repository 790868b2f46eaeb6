package storage

// Persisted key layout. Each key is independently readable and removable:
// the timers, session snapshot and roster cache all recover on their own.
const (
	KeySnapshot       = "session:snapshot"
	KeyTimerEnd       = "timer:end"
	KeyTimerRunning   = "timer:running"
	KeyTimerRemaining = "timer:remaining"
	KeyRoster         = "roster:cache"
	KeyLastSave       = "meta:last_save"
)

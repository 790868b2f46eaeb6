package response

import (
	"time"

	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/timer"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage"
)

// PointEntry represents one recorded point in API responses
type PointEntry struct {
	ID         string `json:"id"`
	MatchID    string `json:"match_id"`
	RecordedAt string `json:"recorded_at"`
	Team       string `json:"team"`
	Letter     string `json:"letter"`
	Scorer     string `json:"scorer"`
	Assist     string `json:"assist"`
	Marker     string `json:"marker"`
}

// PointEntryFromModel converts a model.PointEntry
func PointEntryFromModel(e model.PointEntry) PointEntry {
	return PointEntry{
		ID:         e.ID,
		MatchID:    e.MatchID,
		RecordedAt: e.RecordedAt,
		Team:       e.Team,
		Letter:     string(e.Letter),
		Scorer:     e.Scorer,
		Assist:     e.Assist,
		Marker:     string(e.Marker),
	}
}

// Session is the full scoreboard view
type Session struct {
	MatchID         string       `json:"match_id"`
	TeamAName       string       `json:"team_a_name"`
	TeamBName       string       `json:"team_b_name"`
	TeamAScore      int          `json:"team_a_score"`
	TeamBScore      int          `json:"team_b_score"`
	TeamARoster     string       `json:"team_a_roster"`
	TeamBRoster     string       `json:"team_b_roster"`
	ClockLabel      string       `json:"clock_label"`
	PossessionStart string       `json:"possession_start"`
	PointLog        []PointEntry `json:"point_log"`
	SavedAt         *time.Time   `json:"saved_at,omitempty"`
	Dirty           bool         `json:"dirty"`
}

// SessionFromModel converts a snapshot plus dirty flag
func SessionFromModel(s *model.Snapshot, dirty bool) Session {
	log := make([]PointEntry, len(s.PointLog))
	for i, e := range s.PointLog {
		log[i] = PointEntryFromModel(e)
	}
	out := Session{
		MatchID:         s.MatchID(),
		TeamAName:       s.TeamAName,
		TeamBName:       s.TeamBName,
		TeamAScore:      s.TeamAScore,
		TeamBScore:      s.TeamBScore,
		TeamARoster:     s.TeamARoster,
		TeamBRoster:     s.TeamBRoster,
		ClockLabel:      s.ClockLabel,
		PossessionStart: string(s.PossessionStart),
		PointLog:        log,
		Dirty:           dirty,
	}
	if !s.SavedAt.IsZero() {
		saved := s.SavedAt
		out.SavedAt = &saved
	}
	return out
}

// TimerStatus is the state of one timer
type TimerStatus struct {
	Running     bool   `json:"running"`
	RemainingMs int64  `json:"remaining_ms"`
	Display     string `json:"display"`
}

// TimerStatusFrom builds a TimerStatus from a remaining reading
func TimerStatusFrom(remaining time.Duration, running bool) TimerStatus {
	return TimerStatus{
		Running:     running,
		RemainingMs: remaining.Milliseconds(),
		Display:     timer.FormatRemaining(remaining),
	}
}

// Usage reports persisted storage consumption
type Usage struct {
	TotalBytes int64      `json:"total_bytes"`
	ItemCount  int        `json:"item_count"`
	LastSaveAt *time.Time `json:"last_save_at,omitempty"`
}

// UsageFromInfo converts storage usage info
func UsageFromInfo(info storage.UsageInfo) Usage {
	out := Usage{
		TotalBytes: info.TotalBytes,
		ItemCount:  info.ItemCount,
	}
	if !info.LastSaveAt.IsZero() {
		last := info.LastSaveAt
		out.LastSaveAt = &last
	}
	return out
}

// Roster is the team-to-players mapping
type Roster struct {
	Teams map[string][]string `json:"teams"`
}

// FlushResult reports the outcome of an explicit flush
type FlushResult struct {
	Flushed bool `json:"flushed"`
}

// RestorePending describes a snapshot awaiting a restore decision
type RestorePending struct {
	Pending bool     `json:"pending"`
	Session *Session `json:"session,omitempty"`
}

// SubmitResult reports the outcome of a log submission
type SubmitResult struct {
	Submitted bool   `json:"submitted"`
	GameID    string `json:"game_id"`
	Entries   int    `json:"entries"`
}

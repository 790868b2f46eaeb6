package model

import (
	"fmt"
	"time"
)

// SnapshotTTL is how long a persisted snapshot stays usable. Anything older
// is discarded on load and eligible for remediation when storage fills up.
const SnapshotTTL = 7 * 24 * time.Hour

// RestoreWindow is how recent a snapshot must be before the user is offered
// the restore-or-discard choice at startup.
const RestoreWindow = 24 * time.Hour

// Side is a possession marker: which line starts a point.
type Side string

const (
	SideM Side = "M"
	SideF Side = "F"
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideM {
		return SideF
	}
	return SideM
}

// TeamLetter addresses one of the two team slots. Entries record the letter
// at creation time so history stays unambiguous even if a team is renamed
// mid-match or both slots carry the same name.
type TeamLetter string

const (
	TeamA TeamLetter = "A"
	TeamB TeamLetter = "B"
)

// PointEntry is one recorded score. Team holds the resolved team name as it
// was when the point was scored; renaming a team never relabels history.
type PointEntry struct {
	ID         string     `json:"id"`
	MatchID    string     `json:"match_id"`
	RecordedAt string     `json:"recorded_at"`
	Team       string     `json:"team"`
	Letter     TeamLetter `json:"letter"`
	Scorer     string     `json:"scorer"`
	Assist     string     `json:"assist"`

	// Marker is derived from the entry's position in the log. It is
	// recomputed on every rebuild and never trusted independently.
	Marker Side `json:"marker"`
}

// Snapshot is the complete persisted match state at a point in time.
type Snapshot struct {
	TeamAScore int    `json:"team_a_score"`
	TeamBScore int    `json:"team_b_score"`
	TeamAName  string `json:"team_a_name"`
	TeamBName  string `json:"team_b_name"`

	// Rosters are newline-delimited player lists.
	TeamARoster string `json:"team_a_roster"`
	TeamBRoster string `json:"team_b_roster"`

	ClockLabel      string       `json:"clock_label"`
	PointLog        []PointEntry `json:"point_log"`
	PossessionStart Side         `json:"possession_start"`
	SavedAt         time.Time    `json:"saved_at"`
}

// NewSnapshot returns a snapshot with zero defaults.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		TeamAName:       "Team A",
		TeamBName:       "Team B",
		PointLog:        []PointEntry{},
		PossessionStart: SideM,
	}
}

// MatchID returns the "<A> vs <B>" identifier for this match.
func (s *Snapshot) MatchID() string {
	return fmt.Sprintf("%s vs %s", s.TeamAName, s.TeamBName)
}

// TeamName resolves a team letter to the current team name.
func (s *Snapshot) TeamName(letter TeamLetter) (string, error) {
	switch letter {
	case TeamA:
		return s.TeamAName, nil
	case TeamB:
		return s.TeamBName, nil
	default:
		return "", ErrUnknownTeam
	}
}

// Clone returns a copy whose point log is independent of the original.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.PointLog = make([]PointEntry, len(s.PointLog))
	copy(out.PointLog, s.PointLog)
	return &out
}

// Normalize repairs fields that can come back empty from persistence.
func (s *Snapshot) Normalize() {
	if s.PointLog == nil {
		s.PointLog = []PointEntry{}
	}
	if s.PossessionStart != SideM && s.PossessionStart != SideF {
		s.PossessionStart = SideM
	}
	if s.TeamAName == "" {
		s.TeamAName = "Team A"
	}
	if s.TeamBName == "" {
		s.TeamBName = "Team B"
	}
}

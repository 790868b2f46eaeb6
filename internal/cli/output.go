package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case PointEntry:
		o.printPointEntry(v)
	case []PointEntry:
		o.printPointLog(v)
	case TimerStatus:
		o.printTimerStatus(v)
	case Roster:
		o.printRoster(v)
	case Usage:
		o.printUsage(v)
	case RestorePending:
		o.printRestorePending(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	MatchID         string       `json:"match_id"`
	TeamAName       string       `json:"team_a_name"`
	TeamBName       string       `json:"team_b_name"`
	TeamAScore      int          `json:"team_a_score"`
	TeamBScore      int          `json:"team_b_score"`
	ClockLabel      string       `json:"clock_label"`
	PossessionStart string       `json:"possession_start"`
	PointLog        []PointEntry `json:"point_log"`
	SavedAt         *time.Time   `json:"saved_at,omitempty"`
	Dirty           bool         `json:"dirty"`
}

// PointEntry response type
type PointEntry struct {
	ID         string `json:"id"`
	RecordedAt string `json:"recorded_at"`
	Team       string `json:"team"`
	Letter     string `json:"letter"`
	Scorer     string `json:"scorer"`
	Assist     string `json:"assist"`
	Marker     string `json:"marker"`
}

// TimerStatus response type
type TimerStatus struct {
	Running     bool   `json:"running"`
	RemainingMs int64  `json:"remaining_ms"`
	Display     string `json:"display"`
}

// Roster response type
type Roster struct {
	Teams map[string][]string `json:"teams"`
}

// Usage response type
type Usage struct {
	TotalBytes int64      `json:"total_bytes"`
	ItemCount  int        `json:"item_count"`
	LastSaveAt *time.Time `json:"last_save_at,omitempty"`
}

// FlushResult response type
type FlushResult struct {
	Flushed bool `json:"flushed"`
}

// RestorePending response type
type RestorePending struct {
	Pending bool     `json:"pending"`
	Session *Session `json:"session,omitempty"`
}

// SubmitResult response type
type SubmitResult struct {
	Submitted bool   `json:"submitted"`
	GameID    string `json:"game_id"`
	Entries   int    `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("%s\n", s.MatchID)
	fmt.Printf("  %s %d - %d %s\n", s.TeamAName, s.TeamAScore, s.TeamBScore, s.TeamBName)
	fmt.Printf("  Possession start: %s\n", s.PossessionStart)
	if s.ClockLabel != "" {
		fmt.Printf("  Clock: %s\n", s.ClockLabel)
	}
	if s.SavedAt != nil {
		fmt.Printf("  Saved: %s\n", s.SavedAt.Format(time.RFC3339))
	}
	if s.Dirty {
		fmt.Println("  (unsaved changes)")
	}
	if len(s.PointLog) > 0 {
		fmt.Println("  Points:")
		for i, e := range s.PointLog {
			fmt.Printf("    %2d. [%s] %s: %s (assist %s) %s\n",
				i+1, e.Marker, e.Team, e.Scorer, e.Assist, e.RecordedAt)
		}
	}
}

func (o *Output) printPointEntry(e PointEntry) {
	fmt.Printf("%s [%s] %s: %s (assist %s) %s\n",
		e.ID, e.Marker, e.Team, e.Scorer, e.Assist, e.RecordedAt)
}

func (o *Output) printPointLog(entries []PointEntry) {
	if len(entries) == 0 {
		fmt.Println("No points recorded")
		return
	}
	for i, e := range entries {
		fmt.Printf("%2d. %s [%s] %s: %s (assist %s) %s\n",
			i+1, e.ID, e.Marker, e.Team, e.Scorer, e.Assist, e.RecordedAt)
	}
}

func (o *Output) printTimerStatus(t TimerStatus) {
	state := "paused"
	if t.Running {
		state = "running"
	}
	fmt.Printf("%s (%s)\n", t.Display, state)
}

func (o *Output) printRoster(r Roster) {
	if len(r.Teams) == 0 {
		fmt.Println("No teams")
		return
	}
	names := make([]string, 0, len(r.Teams))
	for name := range r.Teams {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s:\n", name)
		for _, player := range r.Teams[name] {
			fmt.Printf("  %s\n", player)
		}
	}
}

func (o *Output) printUsage(u Usage) {
	fmt.Printf("Items: %d\n", u.ItemCount)
	fmt.Printf("Bytes: %d\n", u.TotalBytes)
	if u.LastSaveAt != nil {
		fmt.Printf("Last save: %s\n", u.LastSaveAt.Format(time.RFC3339))
	}
}

func (o *Output) printRestorePending(p RestorePending) {
	if !p.Pending {
		fmt.Println("No restore decision pending")
		return
	}
	fmt.Println("Restore pending for:")
	if p.Session != nil {
		o.printSession(*p.Session)
	}
}

func (o *Output) printSubmitResult(r SubmitResult) {
	fmt.Printf("Submitted %d entries for %s\n", r.Entries, r.GameID)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

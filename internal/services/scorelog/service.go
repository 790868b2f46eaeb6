package scorelog

import (
	"strings"
	"time"

	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/clock"
	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/random"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
)

const (
	// PointIDLength is the length of generated point IDs
	PointIDLength = 12
	// PointIDAlphabet is the characters used in point IDs
	PointIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Service owns the point log reconciliation: appending, editing and deleting
// entries while keeping the running totals and possession markers consistent.
type Service struct {
	clock  clock.Clock
	random random.Random
}

// New creates a new score log service
func New(clk clock.Clock, rnd random.Random) *Service {
	return &Service{
		clock:  clk,
		random: rnd,
	}
}

// Marker returns the possession marker for the point at index, given the
// side that starts the match. Points pair up after the first, so the
// sequence runs start, other, other, start, start, other, other, ...
func Marker(start model.Side, index int) model.Side {
	if (index+1)/2%2 == 0 {
		return start
	}
	return start.Other()
}

// Append records a score for the team in the given slot. The team's running
// total is an O(1) increment; the full recount only happens on Rebuild.
func (s *Service) Append(snap *model.Snapshot, letter model.TeamLetter, scorer, assist string) (model.PointEntry, error) {
	if err := validateNames(scorer, assist); err != nil {
		return model.PointEntry{}, err
	}

	team, err := snap.TeamName(letter)
	if err != nil {
		return model.PointEntry{}, err
	}

	entry := model.PointEntry{
		ID:         s.random.String(PointIDLength, PointIDAlphabet),
		MatchID:    snap.MatchID(),
		RecordedAt: s.clock.Now().Format(time.RFC3339),
		Team:       team,
		Letter:     letter,
		Scorer:     scorer,
		Assist:     assist,
		Marker:     Marker(snap.PossessionStart, len(snap.PointLog)),
	}

	snap.PointLog = append(snap.PointLog, entry)
	switch letter {
	case model.TeamA:
		snap.TeamAScore++
	case model.TeamB:
		snap.TeamBScore++
	}

	return entry, nil
}

// Edit mutates only the scorer and assist of the entry with the given id.
// An unknown id fails without any side effects.
func (s *Service) Edit(snap *model.Snapshot, id, scorer, assist string) error {
	if err := validateNames(scorer, assist); err != nil {
		return err
	}

	idx := indexOf(snap, id)
	if idx < 0 {
		return model.ErrPointNotFound
	}

	snap.PointLog[idx].Scorer = scorer
	snap.PointLog[idx].Assist = assist
	return nil
}

// Delete removes the entry with the given id and rebuilds the whole log:
// totals and possession markers are positional, so every later entry's
// derived values are invalidated by the removal.
func (s *Service) Delete(snap *model.Snapshot, id string) (model.PointEntry, error) {
	idx := indexOf(snap, id)
	if idx < 0 {
		return model.PointEntry{}, model.ErrPointNotFound
	}

	removed := snap.PointLog[idx]
	snap.PointLog = append(snap.PointLog[:idx], snap.PointLog[idx+1:]...)

	Rebuild(snap)
	return removed, nil
}

// Rebuild zeroes both totals, walks the log in order re-incrementing them,
// and recomputes each entry's possession marker from its index. Stored
// totals and markers are never trusted after a mutation that reorders.
func Rebuild(snap *model.Snapshot) {
	snap.TeamAScore = 0
	snap.TeamBScore = 0

	for i := range snap.PointLog {
		entry := &snap.PointLog[i]
		switch entry.Letter {
		case model.TeamA:
			snap.TeamAScore++
		case model.TeamB:
			snap.TeamBScore++
		}
		entry.Marker = Marker(snap.PossessionStart, i)
	}
}

func indexOf(snap *model.Snapshot, id string) int {
	for i := range snap.PointLog {
		if snap.PointLog[i].ID == id {
			return i
		}
	}
	return -1
}

func validateNames(scorer, assist string) error {
	if strings.TrimSpace(scorer) == "" {
		return model.ErrMissingScorer
	}
	if strings.TrimSpace(assist) == "" {
		return model.ErrMissingAssist
	}
	return nil
}

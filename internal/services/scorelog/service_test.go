package scorelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/mocks"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	snap    *model.Snapshot
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.clock, s.random)
	s.snap = model.NewSnapshot()
	s.snap.TeamAName = "Chilli"
	s.snap.TeamBName = "Vipers"
}

func (s *ServiceSuite) appendN(n int, letter model.TeamLetter) {
	for i := 0; i < n; i++ {
		_, err := s.service.Append(s.snap, letter, "scorer", "assist")
		s.Require().NoError(err)
	}
}

// Marker tests

func (s *ServiceSuite) TestMarkerSequenceStartingM() {
	want := []model.Side{
		model.SideM, model.SideF, model.SideF, model.SideM,
		model.SideM, model.SideF, model.SideF, model.SideM,
	}
	for i, side := range want {
		s.Equal(side, Marker(model.SideM, i), "index %d", i)
	}
}

func (s *ServiceSuite) TestMarkerSequenceStartingF() {
	want := []model.Side{
		model.SideF, model.SideM, model.SideM, model.SideF,
		model.SideF, model.SideM, model.SideM, model.SideF,
	}
	for i, side := range want {
		s.Equal(side, Marker(model.SideF, i), "index %d", i)
	}
}

// Append tests

func (s *ServiceSuite) TestAppendIncrementsOwningTeam() {
	s.random.QueueString("point-1")

	entry, err := s.service.Append(s.snap, model.TeamA, "Alice", "Bob")
	s.Require().NoError(err)

	s.Equal("point-1", entry.ID)
	s.Equal("Chilli vs Vipers", entry.MatchID)
	s.Equal("Chilli", entry.Team)
	s.Equal(model.TeamA, entry.Letter)
	s.Equal(model.SideM, entry.Marker)
	s.Equal(1, s.snap.TeamAScore)
	s.Equal(0, s.snap.TeamBScore)
	s.Len(s.snap.PointLog, 1)
}

func (s *ServiceSuite) TestAppendRecordsCurrentTeamName() {
	_, err := s.service.Append(s.snap, model.TeamB, "Alice", "Bob")
	s.Require().NoError(err)

	// Renaming the team afterwards must not relabel history.
	s.snap.TeamBName = "Renamed"
	s.Equal("Vipers", s.snap.PointLog[0].Team)
}

func (s *ServiceSuite) TestAppendValidation() {
	_, err := s.service.Append(s.snap, model.TeamA, "", "Bob")
	s.ErrorIs(err, model.ErrMissingScorer)

	_, err = s.service.Append(s.snap, model.TeamA, "Alice", "  ")
	s.ErrorIs(err, model.ErrMissingAssist)

	_, err = s.service.Append(s.snap, model.TeamLetter("C"), "Alice", "Bob")
	s.ErrorIs(err, model.ErrUnknownTeam)

	s.Empty(s.snap.PointLog)
	s.Equal(0, s.snap.TeamAScore)
}

func (s *ServiceSuite) TestAppendAssignsPositionalMarkers() {
	s.appendN(4, model.TeamA)

	markers := make([]model.Side, 0, 4)
	for _, e := range s.snap.PointLog {
		markers = append(markers, e.Marker)
	}
	s.Equal([]model.Side{model.SideM, model.SideF, model.SideF, model.SideM}, markers)
}

// Edit tests

func (s *ServiceSuite) TestEditMutatesOnlyScorerAndAssist() {
	s.random.QueueString("point-1")
	entry, err := s.service.Append(s.snap, model.TeamA, "Alice", "Bob")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Edit(s.snap, "point-1", "Carol", "Dave"))

	got := s.snap.PointLog[0]
	s.Equal("Carol", got.Scorer)
	s.Equal("Dave", got.Assist)
	s.Equal(entry.Team, got.Team)
	s.Equal(entry.RecordedAt, got.RecordedAt)
	s.Equal(1, s.snap.TeamAScore)
}

func (s *ServiceSuite) TestEditUnknownIDHasNoSideEffects() {
	s.random.QueueString("point-1")
	_, err := s.service.Append(s.snap, model.TeamA, "Alice", "Bob")
	s.Require().NoError(err)

	err = s.service.Edit(s.snap, "missing", "Carol", "Dave")
	s.ErrorIs(err, model.ErrPointNotFound)
	s.Equal("Alice", s.snap.PointLog[0].Scorer)
}

// Delete tests

func (s *ServiceSuite) TestDeleteMiddleEntryRebuildsLaterDerivedValues() {
	ids := []string{"p1", "p2", "p3", "p4", "p5"}
	s.random.QueueString(ids...)
	letters := []model.TeamLetter{model.TeamA, model.TeamB, model.TeamA, model.TeamB, model.TeamA}
	for _, letter := range letters {
		_, err := s.service.Append(s.snap, letter, "scorer", "assist")
		s.Require().NoError(err)
	}

	removed, err := s.service.Delete(s.snap, "p2")
	s.Require().NoError(err)
	s.Equal("p2", removed.ID)

	s.Equal(3, s.snap.TeamAScore)
	s.Equal(1, s.snap.TeamBScore)
	s.Len(s.snap.PointLog, 4)

	// Every later entry's marker is recomputed from its new index.
	markers := make([]model.Side, 0, 4)
	for _, e := range s.snap.PointLog {
		markers = append(markers, e.Marker)
	}
	s.Equal([]model.Side{model.SideM, model.SideF, model.SideF, model.SideM}, markers)
}

func (s *ServiceSuite) TestDeleteUnknownID() {
	_, err := s.service.Delete(s.snap, "missing")
	s.ErrorIs(err, model.ErrPointNotFound)
}

// Rebuild tests

func (s *ServiceSuite) TestRebuildRestoresTotalsInvariant() {
	s.appendN(3, model.TeamA)
	s.appendN(2, model.TeamB)

	// Corrupt the stored totals; rebuild must re-derive them from the log.
	s.snap.TeamAScore = 99
	s.snap.TeamBScore = -1

	Rebuild(s.snap)

	s.Equal(3, s.snap.TeamAScore)
	s.Equal(2, s.snap.TeamBScore)
	s.Equal(len(s.snap.PointLog), s.snap.TeamAScore+s.snap.TeamBScore)
}

func (s *ServiceSuite) TestRebuildRecomputesMarkersAfterStartChange() {
	s.appendN(3, model.TeamA)

	s.snap.PossessionStart = model.SideF
	Rebuild(s.snap)

	markers := make([]model.Side, 0, 3)
	for _, e := range s.snap.PointLog {
		markers = append(markers, e.Marker)
	}
	s.Equal([]model.Side{model.SideF, model.SideM, model.SideM}, markers)
}

func (s *ServiceSuite) TestTotalsPropertyAcrossMixedOperations() {
	s.random.QueueString("a", "b", "c", "d", "e", "f")
	for i, letter := range []model.TeamLetter{model.TeamA, model.TeamA, model.TeamB, model.TeamA, model.TeamB, model.TeamB} {
		_, err := s.service.Append(s.snap, letter, "scorer", "assist")
		s.Require().NoError(err, "append %d", i)
	}

	_, err := s.service.Delete(s.snap, "c")
	s.Require().NoError(err)
	s.Require().NoError(s.service.Edit(s.snap, "d", "edited", "edited"))
	_, err = s.service.Delete(s.snap, "a")
	s.Require().NoError(err)

	Rebuild(s.snap)

	countA, countB := 0, 0
	for _, e := range s.snap.PointLog {
		switch e.Team {
		case s.snap.TeamAName:
			countA++
		case s.snap.TeamBName:
			countB++
		}
	}
	s.Equal(countA, s.snap.TeamAScore)
	s.Equal(countB, s.snap.TeamBScore)
	s.Equal(len(s.snap.PointLog), s.snap.TeamAScore+s.snap.TeamBScore)
}

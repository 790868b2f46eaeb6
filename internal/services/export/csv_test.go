package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
)

type CSVSuite struct {
	suite.Suite
}

func TestCSVSuite(t *testing.T) {
	suite.Run(t, new(CSVSuite))
}

func (s *CSVSuite) snapshotWithLog(entries ...model.PointEntry) *model.Snapshot {
	snap := model.NewSnapshot()
	snap.TeamAName = "Chilli"
	snap.TeamBName = "Vipers"
	snap.PointLog = entries
	return snap
}

func (s *CSVSuite) TestHeaderOnlyForEmptyLog() {
	out, err := WriteCSV(s.snapshotWithLog())
	s.Require().NoError(err)
	s.Equal("GameID,Time,Team,Score,Assist\r\n", string(out))
}

func (s *CSVSuite) TestRowsInLogOrder() {
	out, err := WriteCSV(s.snapshotWithLog(
		model.PointEntry{MatchID: "Chilli vs Vipers", RecordedAt: "14:02:11", Team: "Chilli", Scorer: "Alice", Assist: "Bob"},
		model.PointEntry{MatchID: "Chilli vs Vipers", RecordedAt: "14:05:40", Team: "Vipers", Scorer: "Carol", Assist: "Dana"},
	))
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n")
	s.Require().Len(lines, 3)
	s.Equal("Chilli vs Vipers,14:02:11,Chilli,Alice,Bob", lines[1])
	s.Equal("Chilli vs Vipers,14:05:40,Vipers,Carol,Dana", lines[2])
}

func (s *CSVSuite) TestQuotingRoundTrip() {
	out, err := WriteCSV(s.snapshotWithLog(
		model.PointEntry{MatchID: "Chilli vs Vipers", RecordedAt: "14:02:11", Team: "Chilli", Scorer: `Smith, "Ace"`, Assist: "Bob"},
	))
	s.Require().NoError(err)
	s.Contains(string(out), `"Smith, ""Ace"""`)
}

func (s *CSVSuite) TestCRLFTerminators() {
	out, err := WriteCSV(s.snapshotWithLog(
		model.PointEntry{MatchID: "Chilli vs Vipers", RecordedAt: "14:02:11", Team: "Chilli", Scorer: "Alice", Assist: "Bob"},
	))
	s.Require().NoError(err)
	s.Equal(2, strings.Count(string(out), "\r\n"))
	s.NotContains(strings.ReplaceAll(string(out), "\r\n", ""), "\n")
}

func (s *CSVSuite) TestFilename() {
	s.Equal("Chilli vs Vipers.csv", Filename("Chilli vs Vipers"))
}

func (s *CSVSuite) TestFilenameSanitizesUnsafeCharacters() {
	s.Equal("a_b_c_d.csv", Filename(`a/b\c?d`))
	s.Equal("no_pipes_here.csv", Filename("no|pipes:here"))
}

func (s *CSVSuite) TestFilenameCapsLength() {
	long := strings.Repeat("x", 300)
	name := Filename(long)
	s.Len(name, 124)
	s.True(strings.HasSuffix(name, ".csv"))
}

func (s *CSVSuite) TestFilenameEmptyFallsBack() {
	s.Equal("match.csv", Filename(""))
	s.Equal("match.csv", Filename("   "))
}

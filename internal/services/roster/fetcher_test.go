package roster

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ParseSuite struct {
	suite.Suite
}

func TestParseSuite(t *testing.T) {
	suite.Run(t, new(ParseSuite))
}

func (s *ParseSuite) TestParseJSONShape() {
	teams, err := ParseTeams([]byte(`{"Chilli":["Alice","Bob"],"Vipers":["Carol"]}`))
	s.Require().NoError(err)
	s.Equal([]string{"Alice", "Bob"}, teams["Chilli"])
	s.Equal([]string{"Carol"}, teams["Vipers"])
}

func (s *ParseSuite) TestParseCSVShape() {
	doc := "Chilli,Vipers\nAlice,Carol\nBob,\n"
	teams, err := ParseTeams([]byte(doc))
	s.Require().NoError(err)
	s.Equal([]string{"Alice", "Bob"}, teams["Chilli"])
	s.Equal([]string{"Carol"}, teams["Vipers"])
}

func (s *ParseSuite) TestParseCSVSkipsBlankCells() {
	doc := "Chilli,Vipers\n,Carol\nBob, \n"
	teams, err := ParseTeams([]byte(doc))
	s.Require().NoError(err)
	s.Equal([]string{"Bob"}, teams["Chilli"])
	s.Equal([]string{"Carol"}, teams["Vipers"])
}

func (s *ParseSuite) TestParseCSVDropsMalformedRows() {
	doc := "Chilli,Vipers\nAlice,Carol\n\"unterminated,oops\nBob,Dana\n"
	teams, err := ParseTeams([]byte(doc))
	s.Require().NoError(err)
	s.Contains(teams["Chilli"], "Alice")
	s.Contains(teams["Vipers"], "Carol")
}

func (s *ParseSuite) TestParseCSVIgnoresExtraColumns() {
	doc := "Chilli,Vipers\nAlice,Carol,Stray\n"
	teams, err := ParseTeams([]byte(doc))
	s.Require().NoError(err)
	s.Equal([]string{"Alice"}, teams["Chilli"])
	s.Equal([]string{"Carol"}, teams["Vipers"])
}

func (s *ParseSuite) TestParseEmptyDocument() {
	_, err := ParseTeams([]byte("  \n"))
	s.Error(err)
}

func (s *ParseSuite) TestParseBadJSON() {
	_, err := ParseTeams([]byte(`{"Chilli": "not-a-list"}`))
	s.Error(err)
}

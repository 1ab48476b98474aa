package ui

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchState_Editing(t *testing.T) {
	s := NewSearchState()
	for _, r := range "hello world" {
		s.InsertChar(r)
	}
	assert.Equal(t, "hello world", s.Query())

	s.MoveCursorWordBackward()
	assert.Equal(t, 6, s.cursorPos)
	s.DeleteToEnd()
	assert.Equal(t, "hello ", s.Query())

	s.MoveCursorStart()
	s.DeleteWordForward()
	assert.Equal(t, " ", s.Query())

	s.SetQuery("abc")
	s.MoveCursorLeft()
	s.DeleteCharForward()
	assert.Equal(t, "ab", s.Query())
	s.MoveCursorEnd()
	s.DeleteChar()
	assert.Equal(t, "a", s.Query())

	s.SetQuery("żółw")
	s.MoveCursorLeft()
	s.InsertChar('x')
	assert.Equal(t, "żółxw", s.Query())

	s.Clear()
	assert.Empty(t, s.Query())
	assert.Equal(t, 0, s.cursorPos)
}

func TestSearchState_MatchLine(t *testing.T) {
	s := NewSearchState()
	s.SetMinScore(ScoreThresholdNone)

	ok, _ := s.MatchLine("anything")
	assert.False(t, ok, "empty query matches nothing")

	s.SetQuery("copy")
	ok, res := s.MatchLine("Press copy now")
	assert.True(t, ok)
	assert.Equal(t, []int{6, 7, 8, 9}, sorted(res.Positions))

	ok, _ = s.MatchLine("nothing relevant")
	assert.False(t, ok)
}

func TestSearchState_CaseSensitivity(t *testing.T) {
	s := NewSearchState()
	s.SetMinScore(ScoreThresholdNone)
	s.SetQuery("Title")

	ok, _ := s.MatchLine("title")
	assert.True(t, ok)

	s.SetCaseSensitive(true)
	ok, _ = s.MatchLine("title")
	assert.False(t, ok)
	ok, _ = s.MatchLine("Title")
	assert.True(t, ok)
}

func TestSearchState_MinScore(t *testing.T) {
	s := NewSearchState()
	assert.Equal(t, ScoreThresholdNormal, s.GetMinScore())
	s.SetQuery("abc")

	s.SetMinScore(ScoreThresholdNone)
	ok, loose := s.MatchLine("a..........b..........c")
	assert.True(t, ok)

	s.SetMinScore(loose.Score + 1)
	ok, _ = s.MatchLine("a..........b..........c")
	assert.False(t, ok)
	assert.Equal(t, loose.Score+1, s.GetMinScore())
}

func TestSearchState_FindMatches(t *testing.T) {
	s := NewSearchState()
	s.SetMinScore(ScoreThresholdNone)
	assert.Nil(t, s.FindMatches([]string{"a"}))

	s.SetQuery("go")
	matches := s.FindMatches([]string{"go code", "python", "more go"})
	if assert.Len(t, matches, 2) {
		assert.Equal(t, 0, matches[0].Line)
		assert.Equal(t, 2, matches[1].Line)
	}
}

func sorted(positions []int) []int {
	out := slices.Clone(positions)
	slices.Sort(out)
	return out
}

package ui

import (
	"slices"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// SearchState holds the query being edited and the match settings.
// The query is kept as runes so the cursor never splits a character.
type SearchState struct {
	query         []rune
	cursorPos     int
	caseSensitive bool
	minScore      int // Minimum score threshold for matches
}

// Score threshold constants (based on raw fzf scores)
const (
	ScoreThresholdNormal = 50 // Balanced (default)
	ScoreThresholdNone   = 0  // Accept all matches
)

// NewSearchState creates a new search state
func NewSearchState() *SearchState {
	return &SearchState{minScore: ScoreThresholdNormal}
}

func (s *SearchState) SetCaseSensitive(on bool) {
	s.caseSensitive = on
}

// Query returns the current query
func (s *SearchState) Query() string {
	return string(s.query)
}

// SetQuery replaces the query and moves the cursor to its end
func (s *SearchState) SetQuery(query string) {
	s.query = []rune(query)
	s.cursorPos = len(s.query)
}

func (s *SearchState) Clear() {
	s.query = nil
	s.cursorPos = 0
}

func (s *SearchState) SetMinScore(score int) {
	s.minScore = score
}

func (s *SearchState) GetMinScore() int {
	return s.minScore
}

// InsertChar inserts a character at the cursor position
func (s *SearchState) InsertChar(ch rune) {
	s.query = slices.Insert(s.query, s.cursorPos, ch)
	s.cursorPos++
}

// DeleteChar deletes the character before the cursor (backspace)
func (s *SearchState) DeleteChar() {
	if s.cursorPos > 0 {
		s.query = slices.Delete(s.query, s.cursorPos-1, s.cursorPos)
		s.cursorPos--
	}
}

// DeleteCharForward deletes the character at the cursor (delete)
func (s *SearchState) DeleteCharForward() {
	if s.cursorPos < len(s.query) {
		s.query = slices.Delete(s.query, s.cursorPos, s.cursorPos+1)
	}
}

func (s *SearchState) MoveCursorLeft() {
	if s.cursorPos > 0 {
		s.cursorPos--
	}
}

func (s *SearchState) MoveCursorRight() {
	if s.cursorPos < len(s.query) {
		s.cursorPos++
	}
}

// MoveCursorStart moves cursor to start (Ctrl+A)
func (s *SearchState) MoveCursorStart() {
	s.cursorPos = 0
}

// MoveCursorEnd moves cursor to end (Ctrl+E)
func (s *SearchState) MoveCursorEnd() {
	s.cursorPos = len(s.query)
}

// DeleteToEnd deletes from cursor to end (Ctrl+K)
func (s *SearchState) DeleteToEnd() {
	s.query = s.query[:s.cursorPos]
}

// wordStart returns the start of the word before pos, skipping spaces first
func (s *SearchState) wordStart(pos int) int {
	for pos > 0 && s.query[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && s.query[pos-1] != ' ' {
		pos--
	}
	return pos
}

// wordEnd returns the end of the word after pos, skipping spaces first
func (s *SearchState) wordEnd(pos int) int {
	for pos < len(s.query) && s.query[pos] == ' ' {
		pos++
	}
	for pos < len(s.query) && s.query[pos] != ' ' {
		pos++
	}
	return pos
}

// DeleteWord deletes the word before cursor (Ctrl+W)
func (s *SearchState) DeleteWord() {
	start := s.wordStart(s.cursorPos)
	s.query = slices.Delete(s.query, start, s.cursorPos)
	s.cursorPos = start
}

// MoveCursorWordForward moves cursor to the start of the next word (Alt+F)
func (s *SearchState) MoveCursorWordForward() {
	for s.cursorPos < len(s.query) && s.query[s.cursorPos] != ' ' {
		s.cursorPos++
	}
	for s.cursorPos < len(s.query) && s.query[s.cursorPos] == ' ' {
		s.cursorPos++
	}
}

// MoveCursorWordBackward moves cursor to the start of the previous word (Alt+B)
func (s *SearchState) MoveCursorWordBackward() {
	s.cursorPos = s.wordStart(s.cursorPos)
}

// DeleteWordForward deletes the word after cursor (Alt+D)
func (s *SearchState) DeleteWordForward() {
	s.query = slices.Delete(s.query, s.cursorPos, s.wordEnd(s.cursorPos))
}

// MatchResult contains match score and positions
type MatchResult struct {
	Score     int
	Positions []int
}

// LineMatch is a display line matching the query
type LineMatch struct {
	Line int
	MatchResult
}

// matchWithPositions calculates match score and positions for highlighting
func (s *SearchState) matchWithPositions(text string, slab *util.Slab) MatchResult {
	searchText := text
	pattern := string(s.query)
	if !s.caseSensitive {
		searchText = strings.ToLower(text)
		pattern = strings.ToLower(pattern)
	}

	chars := util.ToChars([]byte(searchText))
	result, positions := algo.FuzzyMatchV2(s.caseSensitive, false, true, &chars, []rune(pattern), true, slab)
	if result.Start < 0 {
		return MatchResult{Score: -1, Positions: nil}
	}

	// fzf positions index into Chars, which are rune positions
	var matchPositions []int
	if positions != nil {
		matchPositions = make([]int, len(*positions))
		copy(matchPositions, *positions)
	}
	return MatchResult{Score: result.Score, Positions: matchPositions}
}

// MatchLine checks if a single line matches the query
func (s *SearchState) MatchLine(text string) (bool, MatchResult) {
	if len(s.query) == 0 {
		return false, MatchResult{Score: -1}
	}
	algo.Init("default")
	res := s.matchWithPositions(text, util.MakeSlab(16384, 1024))
	if res.Score < 0 || (s.minScore > 0 && res.Score < s.minScore) {
		return false, MatchResult{Score: -1}
	}
	return true, res
}

// FindMatches returns the matching lines in document order
func (s *SearchState) FindMatches(texts []string) []LineMatch {
	if len(s.query) == 0 {
		return nil
	}
	algo.Init("default")
	slab := util.MakeSlab(16384, 1024)

	var matches []LineMatch
	for i, text := range texts {
		res := s.matchWithPositions(text, slab)
		if res.Score < 0 || (s.minScore > 0 && res.Score < s.minScore) {
			continue
		}
		matches = append(matches, LineMatch{Line: i, MatchResult: res})
	}
	return matches
}

package ui

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csams/mdrich/internal/logging"
	"github.com/csams/mdrich/internal/markdown"
)

const sampleSource = "# Title\n\nSee [docs](https://example.com/docs).\n\n```\nfmt.Println(1)\n```\n"

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newTestViewer(t *testing.T, s tcell.Screen, source string, opts ...ViewerOption) (*Viewer, *[]string) {
	t.Helper()
	rt, err := markdown.Render(markdown.ParseString(source))
	require.NoError(t, err)

	var copied []string
	opts = append([]ViewerOption{
		WithLogger(logging.Discard()),
		WithClipboard(func(text string) error {
			copied = append(copied, text)
			return nil
		}),
	}, opts...)
	return NewViewer(s, source, rt, opts...), &copied
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func special(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestLayoutLines(t *testing.T) {
	rt := markdown.RichText{
		{Text: "copy\n", Attrs: markdown.Attrs{Link: markdown.CopyAllURL(), Align: markdown.AlignRight}},
		{Text: "Hello "},
		{Text: "world", Attrs: markdown.Attrs{Link: "https://example.com"}},
		{Text: "\nnext"},
	}

	lines := layoutLines(rt)
	require.Len(t, lines, 3)

	assert.Equal(t, "copy", lines[0].text)
	assert.True(t, lines[0].right)
	assert.Equal(t, []linkSpan{{start: 0, end: 4, target: markdown.CopyAllURL()}}, lines[0].links)

	assert.Equal(t, "Hello world", lines[1].text)
	assert.False(t, lines[1].right)
	assert.Equal(t, []linkSpan{{start: 6, end: 11, target: "https://example.com"}}, lines[1].links)

	assert.Equal(t, "next", lines[2].text)
	assert.Empty(t, lines[2].links)
}

func TestLine_StartXAndCellAt(t *testing.T) {
	l := layoutLines(markdown.RichText{{Text: "copy\n", Attrs: markdown.Attrs{Align: markdown.AlignRight}}})[0]

	assert.Equal(t, 16, l.startX(20))
	assert.Equal(t, 0, l.startX(2))
	assert.Equal(t, 0, l.cellAt(16, 20))
	assert.Equal(t, 3, l.cellAt(19, 20))
	assert.Equal(t, -1, l.cellAt(3, 20))
}

func TestViewer_DrawRightAlignsAffordances(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	v, _ := newTestViewer(t, s, sampleSource)

	v.Draw()

	assert.Equal(t, strings.Repeat(" ", 36)+"copy", rowText(s, 0))
	assert.Equal(t, "Title", rowText(s, 1))
	assert.Contains(t, rowText(s, 9), "NORMAL")
}

func TestViewer_Quit(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	v, _ := newTestViewer(t, s, sampleSource)

	assert.True(t, v.HandleEvent(key('j')))
	assert.False(t, v.HandleEvent(key('q')))
	assert.False(t, v.HandleEvent(special(tcell.KeyCtrlC)))
	assert.False(t, v.HandleEvent(tcell.NewEventInterrupt(nil)))
}

func TestViewer_Scroll(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("line\n\n")
	}
	s := newTestScreen(t, 40, 10)
	v, _ := newTestViewer(t, s, b.String())

	v.HandleEvent(key('j'))
	assert.Equal(t, 1, v.offset)
	v.HandleEvent(key('k'))
	v.HandleEvent(key('k'))
	assert.Equal(t, 0, v.offset)

	v.HandleEvent(key(' '))
	assert.Equal(t, 9, v.offset)

	v.HandleEvent(key('G'))
	assert.Equal(t, v.maxOffset(), v.offset)
	v.HandleEvent(key('j'))
	assert.Equal(t, v.maxOffset(), v.offset)

	v.HandleEvent(key('g'))
	assert.Equal(t, 0, v.offset)
}

func TestViewer_CopyAllWithKeyboard(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	v, copied := newTestViewer(t, s, sampleSource)

	v.HandleEvent(special(tcell.KeyTab))
	assert.Equal(t, 0, v.selected)
	v.HandleEvent(special(tcell.KeyEnter))

	assert.Equal(t, []string{sampleSource}, *copied)
	assert.Equal(t, "Copied document", v.Status())
}

func TestViewer_LinkCycling(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	v, copied := newTestViewer(t, s, sampleSource)
	require.Len(t, v.links, 3)

	v.HandleEvent(special(tcell.KeyTab))
	v.HandleEvent(special(tcell.KeyTab))
	assert.Equal(t, "https://example.com/docs", v.Status())
	v.HandleEvent(special(tcell.KeyEnter))
	assert.Equal(t, "Link: https://example.com/docs", v.Status())
	assert.Empty(t, *copied)

	v.HandleEvent(special(tcell.KeyTab))
	v.HandleEvent(special(tcell.KeyEnter))
	assert.Equal(t, []string{"fmt.Println(1)\n"}, *copied)
	assert.Equal(t, "Copied code block", v.Status())

	// wraps around
	v.HandleEvent(special(tcell.KeyTab))
	assert.Equal(t, 0, v.selected)
	v.HandleEvent(special(tcell.KeyBacktab))
	assert.Equal(t, 2, v.selected)
}

func TestViewer_NoLinks(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	v := NewViewer(s, "", markdown.RichText{{Text: "plain\n"}}, WithLogger(logging.Discard()))

	v.HandleEvent(special(tcell.KeyTab))
	assert.Equal(t, -1, v.selected)
	assert.Equal(t, "No links", v.Status())
}

func TestViewer_MouseClickCopiesCode(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	v, copied := newTestViewer(t, s, sampleSource)
	v.Draw()

	row := -1
	for y := 1; y < 9; y++ {
		if strings.HasSuffix(rowText(s, y), "copy") {
			row = y
			break
		}
	}
	require.NotEqual(t, -1, row, "code block affordance not drawn")

	v.HandleEvent(tcell.NewEventMouse(38, row, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(38, row, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, []string{"fmt.Println(1)\n"}, *copied)
}

func TestViewer_MouseClickOutsideLinks(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	v, copied := newTestViewer(t, s, sampleSource)

	v.HandleEvent(tcell.NewEventMouse(0, 1, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(0, 9, tcell.Button1, tcell.ModNone))

	assert.Empty(t, *copied)
	assert.Equal(t, -1, v.selected)
}

func TestViewer_CopyFailure(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	rt, err := markdown.Render(markdown.ParseString("text"))
	require.NoError(t, err)
	v := NewViewer(s, "text", rt,
		WithLogger(logging.Discard()),
		WithClipboard(func(string) error { return errors.New("no clipboard") }))

	v.Activate(markdown.CopyAllURL())
	assert.Equal(t, "Copy failed: no clipboard", v.Status())
}

func TestViewer_Search(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("filler\n\n")
	}
	b.WriteString("needle here\n\nmore filler\n\nanother needle\n")
	s := newTestScreen(t, 40, 10)
	v, _ := newTestViewer(t, s, b.String(), WithSearch(ScoreThresholdNone, false))

	v.HandleEvent(key('/'))
	assert.Equal(t, ModeSearch, v.mode)
	for _, r := range "NEEDLE" {
		v.HandleEvent(key(r))
	}
	v.Draw()
	assert.Equal(t, "/NEEDLE", rowText(s, 9))

	v.HandleEvent(special(tcell.KeyEnter))
	assert.Equal(t, ModeNormal, v.mode)
	require.Len(t, v.matches, 2)
	assert.Equal(t, "Match 1/2", v.Status())
	first := v.matches[0].Line
	assert.Equal(t, "needle here", v.lines[first].text)
	assert.True(t, first >= v.offset && first < v.offset+v.pageSize())

	v.HandleEvent(key('n'))
	assert.Equal(t, "Match 2/2", v.Status())
	v.HandleEvent(key('n'))
	assert.Equal(t, "Match 1/2", v.Status())
	v.HandleEvent(key('N'))
	assert.Equal(t, "Match 2/2", v.Status())

	// Escape clears the search before it quits
	assert.True(t, v.HandleEvent(special(tcell.KeyEscape)))
	assert.Empty(t, v.matches)
	assert.False(t, v.HandleEvent(special(tcell.KeyEscape)))
}

func TestViewer_SearchNotFound(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	v, _ := newTestViewer(t, s, sampleSource)

	v.HandleEvent(key('/'))
	for _, r := range "zzz" {
		v.HandleEvent(key(r))
	}
	v.HandleEvent(special(tcell.KeyEnter))

	assert.Empty(t, v.matches)
	assert.Equal(t, "Pattern not found: zzz", v.Status())
}

func TestViewer_SearchEditing(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	v, _ := newTestViewer(t, s, sampleSource)

	v.HandleEvent(key('/'))
	for _, r := range "foo bar" {
		v.HandleEvent(key(r))
	}
	v.HandleEvent(special(tcell.KeyCtrlW))
	assert.Equal(t, "foo ", v.search.Query())
	v.HandleEvent(special(tcell.KeyBackspace2))
	v.HandleEvent(special(tcell.KeyCtrlA))
	v.HandleEvent(key('x'))
	assert.Equal(t, "xfoo", v.search.Query())

	v.HandleEvent(special(tcell.KeyEscape))
	assert.Equal(t, ModeNormal, v.mode)
	assert.Empty(t, v.search.Query())
}

func TestViewer_HelpDialog(t *testing.T) {
	s := newTestScreen(t, 80, 30)
	v, _ := newTestViewer(t, s, sampleSource)

	v.HandleEvent(key('?'))
	assert.True(t, v.helpDialog.IsVisible())
	v.Draw()

	found := false
	for y := 0; y < 30; y++ {
		if strings.Contains(rowText(s, y), "Help - Keybindings") {
			found = true
		}
	}
	assert.True(t, found)

	// keys go to the dialog while it is open
	assert.True(t, v.HandleEvent(key('q')))
	assert.False(t, v.helpDialog.IsVisible())
}

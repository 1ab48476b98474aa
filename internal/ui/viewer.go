package ui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/csams/mdrich/internal/markdown"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// Viewer displays rendered rich text in a terminal and acts on its links
type Viewer struct {
	screen        tcell.Screen
	source        string
	name          string
	lines         []line
	links         []linkRef
	selected      int // index into links, -1 when nothing is selected
	offset        int
	mode          Mode
	search        *SearchState
	matches       []LineMatch
	currentMatch  int
	helpDialog    *HelpDialog
	statusMessage string
	buttonDown    bool

	copy   func(string) error
	logger *log.Logger
}

// ViewerOption configures a Viewer
type ViewerOption func(*Viewer)

// WithClipboard replaces the system clipboard writer
func WithClipboard(write func(string) error) ViewerOption {
	return func(v *Viewer) {
		v.copy = write
	}
}

// WithLogger sets the logger used for viewer diagnostics
func WithLogger(logger *log.Logger) ViewerOption {
	return func(v *Viewer) {
		v.logger = logger
	}
}

// WithSearch sets the fuzzy search threshold and case sensitivity
func WithSearch(minScore int, caseSensitive bool) ViewerOption {
	return func(v *Viewer) {
		v.search.SetMinScore(minScore)
		v.search.SetCaseSensitive(caseSensitive)
	}
}

// WithName sets the document name shown in the status bar
func WithName(name string) ViewerOption {
	return func(v *Viewer) {
		v.name = name
	}
}

// NewViewer creates a viewer for rt. source is the markdown text the
// copy-all affordance places on the clipboard.
func NewViewer(screen tcell.Screen, source string, rt markdown.RichText, opts ...ViewerOption) *Viewer {
	v := &Viewer{
		screen:     screen,
		source:     source,
		lines:      layoutLines(rt),
		selected:   -1,
		search:     NewSearchState(),
		helpDialog: NewHelpDialog(),
		copy:       clipboard.WriteAll,
		logger:     log.Default(),
	}
	for i, l := range v.lines {
		for j := range l.links {
			v.links = append(v.links, linkRef{line: i, span: j})
		}
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run takes over the terminal until the user quits
func (v *Viewer) Run() error {
	s := v.screen
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	s.EnableMouse()
	s.SetStyle(StyleDefault)
	s.Clear()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigCh:
			v.logger.Info("Received interrupt signal, shutting down")
			// Post an interrupt event to ensure event loop exits
			s.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	v.Draw()
	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if !v.HandleEvent(ev) {
			return nil
		}
		v.Draw()
	}
}

// HandleEvent processes one terminal event. It returns false when the
// viewer should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.clampOffset()
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventInterrupt:
		return false
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	// Help dialog takes precedence over all other input
	if v.helpDialog.IsVisible() {
		v.helpDialog.HandleKey(ev)
		return true
	}
	if v.mode == ModeSearch {
		v.handleSearchKey(ev)
		return true
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		if len(v.matches) > 0 {
			v.clearSearch()
			return true
		}
		return false
	case tcell.KeyUp:
		v.scroll(-1)
	case tcell.KeyDown:
		v.scroll(1)
	case tcell.KeyPgUp:
		v.scroll(-v.pageSize())
	case tcell.KeyPgDn:
		v.scroll(v.pageSize())
	case tcell.KeyHome:
		v.offset = 0
	case tcell.KeyEnd:
		v.offset = v.maxOffset()
	case tcell.KeyTab:
		v.selectLink(v.selected + 1)
	case tcell.KeyBacktab:
		if v.selected < 0 {
			v.selectLink(len(v.links) - 1)
		} else {
			v.selectLink(v.selected - 1)
		}
	case tcell.KeyEnter:
		if v.selected >= 0 {
			v.Activate(v.linkTarget(v.links[v.selected]))
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'j':
			v.scroll(1)
		case 'k':
			v.scroll(-1)
		case ' ':
			v.scroll(v.pageSize())
		case 'b':
			v.scroll(-v.pageSize())
		case 'g':
			v.offset = 0
		case 'G':
			v.offset = v.maxOffset()
		case '/':
			v.mode = ModeSearch
			v.search.Clear()
			v.statusMessage = ""
		case 'n':
			v.jumpToMatch(v.currentMatch + 1)
		case 'N':
			v.jumpToMatch(v.currentMatch - 1)
		case '?':
			v.helpDialog.Show()
		}
	}
	return true
}

func (v *Viewer) handleSearchKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		v.mode = ModeNormal
		v.runSearch()
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.mode = ModeNormal
		v.search.Clear()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.search.DeleteChar()
	case tcell.KeyDelete, tcell.KeyCtrlD:
		v.search.DeleteCharForward()
	case tcell.KeyLeft, tcell.KeyCtrlB:
		v.search.MoveCursorLeft()
	case tcell.KeyRight, tcell.KeyCtrlF:
		v.search.MoveCursorRight()
	case tcell.KeyCtrlA:
		v.search.MoveCursorStart()
	case tcell.KeyCtrlE:
		v.search.MoveCursorEnd()
	case tcell.KeyCtrlK:
		v.search.DeleteToEnd()
	case tcell.KeyCtrlW:
		v.search.DeleteWord()
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			switch ev.Rune() {
			case 'f':
				v.search.MoveCursorWordForward()
			case 'b':
				v.search.MoveCursorWordBackward()
			case 'd':
				v.search.DeleteWordForward()
			}
			return
		}
		v.search.InsertChar(ev.Rune())
	}
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		v.scroll(-3)
	case buttons&tcell.WheelDown != 0:
		v.scroll(3)
	}

	pressed := buttons&tcell.Button1 != 0
	if pressed && !v.buttonDown {
		x, y := ev.Position()
		v.click(x, y)
	}
	v.buttonDown = pressed
}

func (v *Viewer) click(x, y int) {
	if y >= v.pageSize() {
		return
	}
	idx := v.offset + y
	if idx >= len(v.lines) {
		return
	}
	w, _ := v.screen.Size()
	l := v.lines[idx]
	ci := l.cellAt(x, w)
	if ci < 0 {
		return
	}
	for i, ref := range v.links {
		if ref.line != idx {
			continue
		}
		span := l.links[ref.span]
		if ci >= span.start && ci < span.end {
			v.selected = i
			v.Activate(span.target)
			return
		}
	}
}

// Activate performs the action behind a link target. Copy affordances
// write to the clipboard; any other target is shown in the status bar.
func (v *Viewer) Activate(target string) {
	action, payload := markdown.ParseAction(target)
	switch action {
	case markdown.ActionCopyAll:
		v.copyText(v.source, "Copied document")
	case markdown.ActionCopyCode:
		v.copyText(payload, "Copied code block")
	default:
		v.statusMessage = "Link: " + target
	}
}

func (v *Viewer) copyText(text, done string) {
	if err := v.copy(text); err != nil {
		v.logger.Error("Failed to write clipboard", "err", err)
		v.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	v.logger.Debug("Copied to clipboard", "bytes", len(text))
	v.statusMessage = done
}

func (v *Viewer) runSearch() {
	query := v.search.Query()
	if query == "" {
		v.clearSearch()
		return
	}
	texts := make([]string, len(v.lines))
	for i, l := range v.lines {
		texts[i] = l.text
	}
	v.matches = v.search.FindMatches(texts)
	v.logger.Debug("Search", "query", query, "matches", len(v.matches))
	if len(v.matches) == 0 {
		v.statusMessage = "Pattern not found: " + query
		return
	}
	v.jumpToMatch(0)
}

func (v *Viewer) jumpToMatch(i int) {
	if len(v.matches) == 0 {
		return
	}
	i = (i + len(v.matches)) % len(v.matches)
	v.currentMatch = i
	v.ensureVisible(v.matches[i].Line)
	v.statusMessage = fmt.Sprintf("Match %d/%d", i+1, len(v.matches))
}

func (v *Viewer) clearSearch() {
	v.search.Clear()
	v.matches = nil
	v.currentMatch = 0
	v.statusMessage = ""
}

func (v *Viewer) selectLink(i int) {
	if len(v.links) == 0 {
		v.statusMessage = "No links"
		return
	}
	i = (i + len(v.links)) % len(v.links)
	v.selected = i
	ref := v.links[i]
	v.ensureVisible(ref.line)
	v.statusMessage = v.linkTarget(ref)
}

func (v *Viewer) linkTarget(ref linkRef) string {
	return v.lines[ref.line].links[ref.span].target
}

func (v *Viewer) pageSize() int {
	_, h := v.screen.Size()
	if h <= 1 {
		return 1
	}
	return h - 1 // status bar
}

func (v *Viewer) maxOffset() int {
	if m := len(v.lines) - v.pageSize(); m > 0 {
		return m
	}
	return 0
}

func (v *Viewer) scroll(delta int) {
	v.offset += delta
	v.clampOffset()
}

func (v *Viewer) clampOffset() {
	if v.offset > v.maxOffset() {
		v.offset = v.maxOffset()
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *Viewer) ensureVisible(idx int) {
	if idx < v.offset {
		v.offset = idx
	} else if idx >= v.offset+v.pageSize() {
		v.offset = idx - v.pageSize() + 1
	}
	v.clampOffset()
}

// Status returns the current status bar message
func (v *Viewer) Status() string {
	return v.statusMessage
}

// Draw renders the visible part of the document, the status bar and any dialog
func (v *Viewer) Draw() {
	s := v.screen
	w, _ := s.Size()
	s.Clear()

	var selected *linkSpan
	selectedLine := -1
	if v.selected >= 0 {
		ref := v.links[v.selected]
		selectedLine = ref.line
		selected = &v.lines[ref.line].links[ref.span]
	}
	highlights := make(map[int][]int, len(v.matches))
	for _, m := range v.matches {
		highlights[m.Line] = m.Positions
	}

	for row := 0; row < v.pageSize(); row++ {
		for x := 0; x < w; x++ {
			s.SetContent(x, row, ' ', nil, StyleDefault)
		}
		idx := v.offset + row
		if idx >= len(v.lines) {
			continue
		}
		l := v.lines[idx]
		hl := make(map[int]bool, len(highlights[idx]))
		for _, pos := range highlights[idx] {
			hl[pos] = true
		}

		x := l.startX(w)
		for ci, c := range l.cells {
			if x >= w {
				break
			}
			style := GetTcellStyle(c.attrs)
			if hl[ci] {
				style = style.Foreground(ColorHighlight).Bold(true)
			}
			if idx == selectedLine && ci >= selected.start && ci < selected.end {
				style = style.Reverse(true)
			}
			s.SetContent(x, row, c.ch, nil, style)
			x += runewidth.RuneWidth(c.ch)
		}
	}

	v.drawStatusBar()
	v.helpDialog.Draw(s)
	s.Show()
}

func (v *Viewer) drawStatusBar() {
	s := v.screen
	w, h := s.Size()
	y := h - 1
	style := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}

	if v.mode == ModeSearch {
		query := v.search.query
		drawText(s, 0, y, style, "/"+string(query))
		cursorX := 1 + runewidth.StringWidth(string(query[:v.search.cursorPos])) // 1 for the "/" prefix
		cursorStyle := style.Reverse(true)
		if v.search.cursorPos < len(query) {
			s.SetContent(cursorX, y, query[v.search.cursorPos], nil, cursorStyle)
		} else {
			s.SetContent(cursorX, y, ' ', nil, cursorStyle)
		}
		return
	}

	left := v.name
	if left == "" {
		left = "NORMAL"
	}
	drawText(s, 0, y, style, left)

	position := fmt.Sprintf("%d/%d", min(v.offset+v.pageSize(), len(v.lines)), len(v.lines))
	drawText(s, w-len(position)-1, y, style.Foreground(ColorDimmed), position)

	if v.statusMessage != "" {
		msg := v.statusMessage
		maxMsgWidth := w - len(left) - len(position) - 4
		if maxMsgWidth <= 0 {
			return
		}
		if runewidth.StringWidth(msg) > maxMsgWidth {
			msg = runewidth.Truncate(msg, maxMsgWidth, "...")
		}
		msgStyle := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorYellow)
		drawText(s, len(left)+2, y, msgStyle, msg)
	}
}

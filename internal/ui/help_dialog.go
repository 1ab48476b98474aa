package ui

import (
	"github.com/gdamore/tcell/v2"
)

var helpLines = []string{
	"",
	"Navigation:",
	"  j / k         Scroll down/up one line",
	"  Space / b     Page down/up",
	"  g / G         Go to top/bottom",
	"",
	"Links:",
	"  Tab / S-Tab   Select next/previous link",
	"  Enter         Activate selected link",
	"  Click         Activate link under the mouse",
	"  copy          Copies the document or the code block below",
	"",
	"Search:",
	"  /             Enter search mode",
	"  n / N         Next/previous match",
	"  Esc           Cancel search",
	"",
	"Other:",
	"  ?             Show this help dialog",
	"  q             Quit",
	"",
}

type HelpDialog struct {
	visible      bool
	scrollOffset int
	visibleLines int
}

func NewHelpDialog() *HelpDialog {
	return &HelpDialog{visibleLines: len(helpLines)}
}

func (h *HelpDialog) Show() {
	h.visible = true
	h.scrollOffset = 0
}

func (h *HelpDialog) Hide() {
	h.visible = false
}

func (h *HelpDialog) IsVisible() bool {
	return h.visible
}

func (h *HelpDialog) Draw(s tcell.Screen) {
	if !h.visible {
		return
	}

	w, screenHeight := s.Size()

	maxLineWidth := 0
	for _, line := range helpLines {
		if len(line) > maxLineWidth {
			maxLineWidth = len(line)
		}
	}

	dialogWidth := maxLineWidth + 4 // 2 for borders, 2 for margins
	if dialogWidth > w-2 {
		dialogWidth = w - 2
	}
	dialogHeight := len(helpLines) + 4 // content + borders + title
	if dialogHeight > screenHeight-2 {
		dialogHeight = screenHeight - 2
	}
	if dialogWidth < 4 || dialogHeight < 5 {
		return
	}

	startX := (w - dialogWidth) / 2
	startY := (screenHeight - dialogHeight) / 2

	dialogStyle := tcell.StyleDefault.Background(ColorSelection).Foreground(ColorFg)
	for y := startY; y < startY+dialogHeight; y++ {
		for x := startX; x < startX+dialogWidth; x++ {
			s.SetContent(x, y, ' ', nil, dialogStyle)
		}
	}

	for x := startX; x < startX+dialogWidth; x++ {
		switch x {
		case startX:
			s.SetContent(x, startY, '┌', nil, dialogStyle)
			s.SetContent(x, startY+dialogHeight-1, '└', nil, dialogStyle)
		case startX + dialogWidth - 1:
			s.SetContent(x, startY, '┐', nil, dialogStyle)
			s.SetContent(x, startY+dialogHeight-1, '┘', nil, dialogStyle)
		default:
			s.SetContent(x, startY, '─', nil, dialogStyle)
			s.SetContent(x, startY+dialogHeight-1, '─', nil, dialogStyle)
		}
	}
	for y := startY + 1; y < startY+dialogHeight-1; y++ {
		s.SetContent(startX, y, '│', nil, dialogStyle)
		s.SetContent(startX+dialogWidth-1, y, '│', nil, dialogStyle)
	}

	title := "Help - Keybindings"
	titleStyle := dialogStyle.Foreground(ColorHighlight).Bold(true)
	drawText(s, startX+(dialogWidth-len(title))/2, startY+1, titleStyle, title)

	h.visibleLines = dialogHeight - 3
	h.clampScroll()
	for i := 0; i < h.visibleLines && i+h.scrollOffset < len(helpLines); i++ {
		line := helpLines[i+h.scrollOffset]
		maxContentWidth := dialogWidth - 4
		if len(line) > maxContentWidth {
			line = line[:maxContentWidth]
		}
		drawText(s, startX+2, startY+2+i, dialogStyle, line)
	}
}

func (h *HelpDialog) HandleKey(ev *tcell.EventKey) bool {
	if !h.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		h.Hide()
	case tcell.KeyUp:
		h.scrollOffset--
	case tcell.KeyDown:
		h.scrollOffset++
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q':
			h.Hide()
		case 'j':
			h.scrollOffset++
		case 'k':
			h.scrollOffset--
		case 'g':
			h.scrollOffset = 0
		case 'G':
			h.scrollOffset = len(helpLines)
		}
	}
	h.clampScroll()
	return true // Consume all keys when visible
}

func (h *HelpDialog) clampScroll() {
	maxScroll := len(helpLines) - h.visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if h.scrollOffset > maxScroll {
		h.scrollOffset = maxScroll
	}
	if h.scrollOffset < 0 {
		h.scrollOffset = 0
	}
}

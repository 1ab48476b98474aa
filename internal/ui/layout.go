package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/csams/mdrich/internal/markdown"
)

// cell is one rune of rendered output with its attributes
type cell struct {
	ch    rune
	attrs markdown.Attrs
}

// line is one display line of a rendered document
type line struct {
	cells []cell
	text  string
	right bool // right aligned, used by copy affordances
	links []linkSpan
}

// linkSpan is a run of cells in a line sharing one link target
type linkSpan struct {
	start, end int // cell indices, end exclusive
	target     string
}

// linkRef locates a link span in the document
type linkRef struct {
	line, span int
}

// layoutLines splits rich text into display lines
func layoutLines(rt markdown.RichText) []line {
	text, styles := rt.Flatten()

	var lines []line
	var cur line
	flush := func() {
		cur.text = cellText(cur.cells)
		cur.links = findLinks(cur.cells)
		lines = append(lines, cur)
		cur = line{}
	}

	si := 0
	for pos, ch := range []rune(text) {
		for pos >= styles[si].End {
			si++
		}
		attrs := styles[si].Attrs
		if attrs.Align == markdown.AlignRight {
			cur.right = true
		}
		if ch == '\n' {
			flush()
			continue
		}
		cur.cells = append(cur.cells, cell{ch: ch, attrs: attrs})
	}
	if len(cur.cells) > 0 {
		flush()
	}
	return lines
}

func cellText(cells []cell) string {
	runes := make([]rune, len(cells))
	for i, c := range cells {
		runes[i] = c.ch
	}
	return string(runes)
}

func findLinks(cells []cell) []linkSpan {
	var spans []linkSpan
	for i := 0; i < len(cells); {
		target := cells[i].attrs.Link
		if target == "" {
			i++
			continue
		}
		j := i
		for j < len(cells) && cells[j].attrs.Link == target {
			j++
		}
		spans = append(spans, linkSpan{start: i, end: j, target: target})
		i = j
	}
	return spans
}

// width returns the display width of a line
func (l line) width() int {
	w := 0
	for _, c := range l.cells {
		w += runewidth.RuneWidth(c.ch)
	}
	return w
}

// startX returns the screen column a line starts at
func (l line) startX(screenWidth int) int {
	if !l.right {
		return 0
	}
	if x := screenWidth - l.width(); x > 0 {
		return x
	}
	return 0
}

// cellAt returns the index of the cell covering screen column x
func (l line) cellAt(x, screenWidth int) int {
	col := l.startX(screenWidth)
	for i, c := range l.cells {
		w := runewidth.RuneWidth(c.ch)
		if x >= col && x < col+w {
			return i
		}
		col += w
	}
	return -1
}

// drawText draws text at the given position, truncating at the screen edge
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

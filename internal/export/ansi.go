package export

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csams/mdrich/internal/markdown"
)

// TokyoNight accents, shared with the terminal viewer
var (
	colorHeading    = lipgloss.Color("#7aa2f7")
	colorCode       = lipgloss.Color("#9ece6a")
	colorLink       = lipgloss.Color("#7dcfff")
	colorAffordance = lipgloss.Color("#565f89")
)

// ANSIEncoder renders rich text with terminal escape sequences
type ANSIEncoder struct {
	base     lipgloss.Style
	headings [3]lipgloss.Style
}

// NewANSIEncoder creates an encoder whose color profile is taken from r
func NewANSIEncoder(r *lipgloss.Renderer) *ANSIEncoder {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &ANSIEncoder{
		base: base,
		headings: [3]lipgloss.Style{
			base.Bold(true).Underline(true).Foreground(colorHeading),
			base.Bold(true).Foreground(colorHeading),
			base.Foreground(colorHeading),
		},
	}
}

// Style maps run attributes to a lipgloss style
func (e *ANSIEncoder) Style(a markdown.Attrs) lipgloss.Style {
	s := e.base
	if a.HeadingLevel >= 1 && a.HeadingLevel <= len(e.headings) {
		s = e.headings[a.HeadingLevel-1]
	}
	if a.Weight == markdown.WeightBold {
		s = s.Bold(true)
	}
	if a.Slant == markdown.SlantItalic {
		s = s.Italic(true)
	}
	if a.Monospace {
		s = s.Foreground(colorCode)
	}
	if a.Strike {
		s = s.Strikethrough(true)
	}
	if a.Link != "" {
		s = s.Underline(true).Foreground(colorLink)
	}
	if a.Align == markdown.AlignRight {
		s = s.Faint(true).Foreground(colorAffordance)
	}
	return s
}

// Encode renders rt. Styles are applied per line so escape sequences
// never span a newline.
func (e *ANSIEncoder) Encode(rt markdown.RichText) string {
	var b strings.Builder
	for _, run := range rt {
		style := e.Style(run.Attrs)
		for i, line := range strings.Split(run.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}

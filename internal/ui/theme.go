package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/csams/mdrich/internal/markdown"
)

// TokyoNight color palette
var (
	ColorBg          = tcell.NewRGBColor(0x1a, 0x1b, 0x26) // #1a1b26 - Dark background
	ColorBgHighlight = tcell.NewRGBColor(0x29, 0x2e, 0x42) // #292e42 - Highlighted background
	ColorFg          = tcell.NewRGBColor(0xc0, 0xca, 0xf5) // #c0caf5 - Default text

	ColorBlue    = tcell.NewRGBColor(0x7a, 0xa2, 0xf7) // #7aa2f7 - Primary blue
	ColorCyan    = tcell.NewRGBColor(0x7d, 0xcf, 0xff) // #7dcfff - Cyan
	ColorGreen   = tcell.NewRGBColor(0x9e, 0xce, 0x6a) // #9ece6a - Green
	ColorMagenta = tcell.NewRGBColor(0xbb, 0x9a, 0xf7) // #bb9af7 - Purple/Magenta
	ColorRed     = tcell.NewRGBColor(0xf7, 0x76, 0x8e) // #f7768e - Red
	ColorYellow  = tcell.NewRGBColor(0xe0, 0xaf, 0x68) // #e0af68 - Yellow
	ColorComment = tcell.NewRGBColor(0x56, 0x5f, 0x89) // #565f89 - Comments

	// UI-specific color mappings
	ColorHeader     = ColorBlue
	ColorCode       = ColorGreen
	ColorLink       = ColorCyan
	ColorAffordance = ColorMagenta
	ColorHighlight  = ColorYellow
	ColorSelection  = ColorBgHighlight
	ColorError      = ColorRed
	ColorDimmed     = ColorComment
)

// StyleDefault is the base style of the viewer
var StyleDefault = tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)

// GetTcellStyle converts run attributes to a tcell Style
func GetTcellStyle(a markdown.Attrs) tcell.Style {
	s := StyleDefault
	switch a.HeadingLevel {
	case 1:
		s = s.Foreground(ColorHeader).Bold(true).Underline(true)
	case 2:
		s = s.Foreground(ColorHeader).Bold(true)
	case 3:
		s = s.Foreground(ColorHeader)
	}
	if a.Weight == markdown.WeightBold {
		s = s.Bold(true)
	}
	if a.Slant == markdown.SlantItalic {
		s = s.Italic(true)
	}
	if a.Monospace {
		s = s.Foreground(ColorCode)
	}
	if a.Strike {
		s = s.StrikeThrough(true)
	}
	if a.Link != "" {
		s = s.Foreground(ColorLink).Underline(true)
	}
	if a.Align == markdown.AlignRight {
		s = s.Foreground(ColorAffordance).Underline(false)
	}
	return s
}

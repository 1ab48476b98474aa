package markdown

import (
	"strings"
	"unicode/utf8"
)

// Weight is the font weight of a run
type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
)

// Slant is the font slant of a run
type Slant int

const (
	SlantNormal Slant = iota
	SlantItalic
)

// Align is the paragraph alignment requested for a run
type Align int

const (
	AlignNatural Align = iota
	AlignRight
)

// Attrs is the attribute set carried by a run.
// HeadingLevel 0 means body text. An empty Link means no hyperlink.
type Attrs struct {
	Weight       Weight `json:"weight"`
	Slant        Slant  `json:"slant"`
	Strike       bool   `json:"strike,omitempty"`
	HeadingLevel int    `json:"headingLevel,omitempty"`
	Monospace    bool   `json:"monospace,omitempty"`
	Link         string `json:"link,omitempty"`
	Align        Align  `json:"align"`
}

// Run is one contiguous piece of output text with a fixed attribute set
type Run struct {
	Text string `json:"text"`
	Attrs
}

// RichText is the ordered sequence of runs making up a rendered document.
// Order is render order.
type RichText []Run

// StyleRange represents a range of text with a fixed attribute set
type StyleRange struct {
	Start int // Rune position in flattened text
	End   int // Rune position in flattened text
	Attrs
}

// String returns the concatenated text of all runs
func (rt RichText) String() string {
	var b strings.Builder
	for _, r := range rt {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Len returns the total rune count
func (rt RichText) Len() int {
	n := 0
	for _, r := range rt {
		n += utf8.RuneCountInString(r.Text)
	}
	return n
}

// Flatten returns the plain text together with one style range per
// non-empty run, in rune offsets.
func (rt RichText) Flatten() (string, []StyleRange) {
	var b strings.Builder
	styles := make([]StyleRange, 0, len(rt))
	pos := 0
	for _, r := range rt {
		n := utf8.RuneCountInString(r.Text)
		if n == 0 {
			continue
		}
		b.WriteString(r.Text)
		styles = append(styles, StyleRange{Start: pos, End: pos + n, Attrs: r.Attrs})
		pos += n
	}
	return b.String(), styles
}

func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "regular"
}

// MarshalText encodes the weight by name
func (w Weight) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (s Slant) String() string {
	if s == SlantItalic {
		return "italic"
	}
	return "normal"
}

// MarshalText encodes the slant by name
func (s Slant) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (a Align) String() string {
	if a == AlignRight {
		return "right"
	}
	return "natural"
}

// MarshalText encodes the alignment by name
func (a Align) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

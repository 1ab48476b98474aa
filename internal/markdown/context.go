package markdown

// StyleContext is the set of formatting flags active at a point of the walk.
// It is always passed and stored by value.
type StyleContext struct {
	Strong        bool
	Emphasis      bool
	Strikethrough bool

	UnorderedList bool
	OrderedList   bool
	Order         int // current item number, local to the innermost ordered list

	Heading      bool
	HeadingLevel int

	CodeBlock bool
	Language  string // informational only

	Link            bool
	LinkDestination string
}

// font is one entry of the font table. Exactly one font is chosen per run.
type font struct {
	weight    Weight
	slant     Slant
	heading   int
	monospace bool
}

var (
	bodyFont      = font{}
	boldFont      = font{weight: WeightBold}
	italicFont    = font{slant: SlantItalic}
	monospaceFont = font{monospace: true}

	headingFonts = [...]font{
		{heading: 1},
		{heading: 2},
		{heading: 3},
	}
)

func (f font) apply(a *Attrs) {
	a.Weight = f.weight
	a.Slant = f.slant
	a.HeadingLevel = f.heading
	a.Monospace = f.monospace
}

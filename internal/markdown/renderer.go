package markdown

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// DefaultMaxDepth bounds the nesting depth the renderer will follow
const DefaultMaxDepth = 512

var newline = Run{Text: "\n"}

// HTMLRenderer converts a raw HTML fragment to rich text.
// It reports false when the fragment cannot be converted.
type HTMLRenderer interface {
	RenderHTML(fragment string) (RichText, bool)
}

// HTMLRendererFunc adapts a function to HTMLRenderer
type HTMLRendererFunc func(fragment string) (RichText, bool)

func (f HTMLRendererFunc) RenderHTML(fragment string) (RichText, bool) {
	return f(fragment)
}

// Renderer walks a document tree and produces rich text.
// A Renderer holds no per-render state and may be reused.
type Renderer struct {
	html                HTMLRenderer
	logger              *log.Logger
	fallbackUnsupported bool
	maxDepth            int
}

// Option configures a Renderer
type Option func(*Renderer)

// WithHTMLRenderer sets the converter used for raw HTML nodes.
// Without one, HTML nodes render nothing.
func WithHTMLRenderer(h HTMLRenderer) Option {
	return func(r *Renderer) {
		r.html = h
	}
}

// WithLogger sets the logger recoverable degradations are reported to
func WithLogger(logger *log.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFallbackUnsupported makes unknown node kinds pass through their
// children instead of failing the render.
func WithFallbackUnsupported(enabled bool) Option {
	return func(r *Renderer) {
		r.fallbackUnsupported = enabled
	}
}

// WithMaxDepth bounds the nesting depth. Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(r *Renderer) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// NewRenderer creates a renderer
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		logger:   log.New(io.Discard),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders a document with the default renderer
func Render(doc *Node) (RichText, error) {
	return NewRenderer().Render(doc)
}

// Render renders doc. The result always starts with the copy-all affordance.
// On error no output is returned.
func (r *Renderer) Render(doc *Node) (RichText, error) {
	out := RichText{copyAllRun()}
	if doc == nil {
		return out, nil
	}
	body, err := r.walk(doc, StyleContext{}, 1)
	if err != nil {
		return nil, err
	}
	return append(out, body...), nil
}

// walk renders the children of node. All children share one rolling
// cursor: style-bearing kinds replace it with a copy of parent plus their
// own flags, list items bump its counter, every other kind leaves it as
// the previous sibling left it.
func (r *Renderer) walk(node *Node, parent StyleContext, depth int) (RichText, error) {
	if depth > r.maxDepth {
		return nil, errors.Wrapf(ErrNestingTooDeep, "depth %d exceeds %d", depth, r.maxDepth)
	}

	var out RichText
	cursor := parent

	for _, child := range node.Children {
		switch child.Kind {
		case KindHeading:
			cursor = parent
			cursor.Heading = true
			cursor.HeadingLevel = child.Level
		case KindCodeBlock:
			// Code blocks start from a clean context so list prefixes
			// never leak into code.
			cursor = StyleContext{CodeBlock: true, Language: child.Language}
			runs, err := r.synthesize(cursor, child.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, newline)
			out = append(out, runs...)
		case KindInlineCode:
			cursor = parent
			cursor.CodeBlock = true
			runs, err := r.synthesize(cursor, child.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, runs...)
		case KindUnorderedList:
			cursor = parent
			cursor.UnorderedList = true
		case KindOrderedList:
			cursor = parent
			cursor.OrderedList = true
			cursor.Order = 0
		case KindListItem:
			cursor.Order++
		case KindEmphasis:
			cursor = parent
			cursor.Emphasis = true
		case KindStrong:
			cursor = parent
			cursor.Strong = true
		case KindStrikethrough:
			cursor = parent
			cursor.Strikethrough = true
		case KindLink, KindImage:
			cursor = parent
			cursor.Link = true
			cursor.LinkDestination = child.Destination
		case KindText:
			runs, err := r.synthesize(cursor, child.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, runs...)
		case KindSoftBreak:
			runs, err := r.synthesize(cursor, " ")
			if err != nil {
				return nil, err
			}
			out = append(out, runs...)
		case KindRawHTMLBlock, KindInlineHTML:
			out = append(out, r.renderHTML(child)...)
		case KindParagraph, KindLineBreak,
			KindThematicBreak, KindBlockQuote, KindCustomBlock, KindCustomInline,
			KindSymbolLink, KindInlineAttributes, KindBlockDirective:
		default:
			if !r.fallbackUnsupported {
				return nil, errors.Wrapf(ErrUnsupportedNodeKind, "%s", child.Kind)
			}
			r.logger.Warn("rendering unsupported node as plain content", "kind", child.Kind)
		}

		inner, err := r.walk(child, cursor, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, inner...)

		switch child.Kind {
		case KindHeading, KindParagraph, KindLineBreak:
			out = append(out, newline)
		case KindCodeBlock:
			out = append(out, newline)
			cursor.CodeBlock = false
		case KindUnorderedList:
			out = append(out, newline)
			cursor.UnorderedList = false
		case KindOrderedList:
			out = append(out, newline)
			cursor.OrderedList = false
			cursor.Order = 0
		}
	}
	return out, nil
}

func (r *Renderer) synthesize(ctx StyleContext, text string) (RichText, error) {
	if ctx.Link {
		if _, ok := linkTarget(ctx.LinkDestination); !ok {
			r.logger.Debug("dropping invalid link destination", "destination", ctx.LinkDestination)
		}
	}
	return Synthesize(ctx, text)
}

func (r *Renderer) renderHTML(node *Node) RichText {
	if r.html == nil {
		r.logger.Debug("no HTML renderer configured, skipping fragment", "kind", node.Kind)
		return nil
	}
	rt, ok := r.html.RenderHTML(node.Value)
	if !ok {
		r.logger.Debug("HTML fragment could not be converted", "kind", node.Kind, "bytes", len(node.Value))
		return nil
	}
	return rt
}

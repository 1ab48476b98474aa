package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// Parse parses markdown source into a document tree
func Parse(source []byte) *Node {
	doc := md.Parser().Parse(text.NewReader(source))
	return convert(doc, source)
}

// ParseString is Parse for string input
func ParseString(source string) *Node {
	return Parse([]byte(source))
}

func convert(n ast.Node, src []byte) *Node {
	var node *Node
	switch n := n.(type) {
	case *ast.Document:
		node = &Node{Kind: KindDocument}
	case *ast.Heading:
		node = &Node{Kind: KindHeading, Level: n.Level}
	case *ast.Paragraph, *ast.TextBlock:
		node = &Node{Kind: KindParagraph}
	case *ast.String:
		return Text(string(n.Value))
	case *ast.FencedCodeBlock:
		return CodeBlock(string(n.Language(src)), lines(n.Lines(), src))
	case *ast.CodeBlock:
		return CodeBlock("", lines(n.Lines(), src))
	case *ast.CodeSpan:
		return InlineCode(inlineText(n, src))
	case *ast.Blockquote:
		node = &Node{Kind: KindBlockQuote}
	case *ast.ThematicBreak:
		return ThematicBreak()
	case *ast.List:
		if n.IsOrdered() {
			node = &Node{Kind: KindOrderedList}
		} else {
			node = &Node{Kind: KindUnorderedList}
		}
	case *ast.ListItem:
		node = &Node{Kind: KindListItem}
	case *ast.Emphasis:
		if n.Level >= 2 {
			node = &Node{Kind: KindStrong}
		} else {
			node = &Node{Kind: KindEmphasis}
		}
	case *east.Strikethrough:
		node = &Node{Kind: KindStrikethrough}
	case *ast.Link:
		node = &Node{Kind: KindLink, Destination: string(n.Destination)}
	case *ast.AutoLink:
		return Link(string(n.URL(src)), Text(string(n.Label(src))))
	case *ast.Image:
		node = &Node{Kind: KindImage, Destination: string(n.Destination)}
	case *ast.HTMLBlock:
		html := lines(n.Lines(), src)
		if n.HasClosure() {
			html += string(n.ClosureLine.Value(src))
		}
		return RawHTMLBlock(html)
	case *ast.RawHTML:
		return InlineHTML(lines(n.Segments, src))
	default:
		// Nodes from extensions this adapter does not know about.
		if n.Type() == ast.TypeInline {
			node = &Node{Kind: KindCustomInline}
		} else {
			node = &Node{Kind: KindCustomBlock}
		}
	}
	node.Children = convertChildren(n, src)
	return node
}

// convertChildren converts the children of n. Adjacent text segments are
// merged and line breaks carried by goldmark text nodes become explicit
// SoftBreak and LineBreak nodes.
func convertChildren(n ast.Node, src []byte) []*Node {
	var children []*Node
	mergeable := false
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			children = append(children, convert(c, src))
			mergeable = false
			continue
		}

		value := string(t.Segment.Value(src))
		if !t.IsRaw() {
			value = decodeText(t.Segment.Value(src))
		}
		if mergeable {
			children[len(children)-1].Value += value
		} else {
			children = append(children, Text(value))
		}
		mergeable = true

		switch {
		case t.HardLineBreak():
			children = append(children, LineBreak())
			mergeable = false
		case t.SoftLineBreak():
			children = append(children, SoftBreak())
			mergeable = false
		}
	}
	return children
}

// decodeText resolves backslash escapes and character references in
// inline text. Code keeps its raw bytes.
func decodeText(b []byte) string {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}

func lines(segs *text.Segments, src []byte) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
		case *ast.String:
			b.Write(c.Value)
		}
	}
	return b.String()
}

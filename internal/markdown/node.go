package markdown

import "fmt"

// Kind identifies the type of a document node
type Kind int

const (
	KindDocument Kind = iota + 1
	KindHeading
	KindParagraph
	KindText
	KindCodeBlock
	KindInlineCode
	KindBlockQuote
	KindThematicBreak
	KindUnorderedList
	KindOrderedList
	KindListItem
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindLink
	KindImage
	KindRawHTMLBlock
	KindInlineHTML
	KindSoftBreak
	KindLineBreak
	KindCustomBlock
	KindCustomInline
	KindBlockDirective
	KindSymbolLink
	KindInlineAttributes
)

var kindNames = map[Kind]string{
	KindDocument:         "Document",
	KindHeading:          "Heading",
	KindParagraph:        "Paragraph",
	KindText:             "Text",
	KindCodeBlock:        "CodeBlock",
	KindInlineCode:       "InlineCode",
	KindBlockQuote:       "BlockQuote",
	KindThematicBreak:    "ThematicBreak",
	KindUnorderedList:    "UnorderedList",
	KindOrderedList:      "OrderedList",
	KindListItem:         "ListItem",
	KindEmphasis:         "Emphasis",
	KindStrong:           "Strong",
	KindStrikethrough:    "Strikethrough",
	KindLink:             "Link",
	KindImage:            "Image",
	KindRawHTMLBlock:     "RawHTMLBlock",
	KindInlineHTML:       "InlineHTML",
	KindSoftBreak:        "SoftBreak",
	KindLineBreak:        "LineBreak",
	KindCustomBlock:      "CustomBlock",
	KindCustomInline:     "CustomInline",
	KindBlockDirective:   "BlockDirective",
	KindSymbolLink:       "SymbolLink",
	KindInlineAttributes: "InlineAttributes",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is one element of a parsed document tree.
// Only the payload fields relevant to Kind are set:
// Level for headings, Value for text, code and html,
// Language for code blocks, Destination for links and images.
type Node struct {
	Kind        Kind
	Level       int
	Value       string
	Language    string
	Destination string
	Children    []*Node
}

// Document creates the root node
func Document(children ...*Node) *Node {
	return &Node{Kind: KindDocument, Children: children}
}

// Heading creates a heading of the given level
func Heading(level int, children ...*Node) *Node {
	return &Node{Kind: KindHeading, Level: level, Children: children}
}

func Paragraph(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

func Text(value string) *Node {
	return &Node{Kind: KindText, Value: value}
}

// CodeBlock creates a fenced or indented code block
func CodeBlock(language, code string) *Node {
	return &Node{Kind: KindCodeBlock, Language: language, Value: code}
}

func InlineCode(code string) *Node {
	return &Node{Kind: KindInlineCode, Value: code}
}

func BlockQuote(children ...*Node) *Node {
	return &Node{Kind: KindBlockQuote, Children: children}
}

func ThematicBreak() *Node {
	return &Node{Kind: KindThematicBreak}
}

func UnorderedList(items ...*Node) *Node {
	return &Node{Kind: KindUnorderedList, Children: items}
}

func OrderedList(items ...*Node) *Node {
	return &Node{Kind: KindOrderedList, Children: items}
}

func ListItem(children ...*Node) *Node {
	return &Node{Kind: KindListItem, Children: children}
}

func Emphasis(children ...*Node) *Node {
	return &Node{Kind: KindEmphasis, Children: children}
}

func Strong(children ...*Node) *Node {
	return &Node{Kind: KindStrong, Children: children}
}

func Strikethrough(children ...*Node) *Node {
	return &Node{Kind: KindStrikethrough, Children: children}
}

// Link creates a hyperlink whose children are the link text
func Link(destination string, children ...*Node) *Node {
	return &Node{Kind: KindLink, Destination: destination, Children: children}
}

// Image creates an image whose children are the alt text
func Image(source string, children ...*Node) *Node {
	return &Node{Kind: KindImage, Destination: source, Children: children}
}

func RawHTMLBlock(html string) *Node {
	return &Node{Kind: KindRawHTMLBlock, Value: html}
}

func InlineHTML(html string) *Node {
	return &Node{Kind: KindInlineHTML, Value: html}
}

func SoftBreak() *Node {
	return &Node{Kind: KindSoftBreak}
}

func LineBreak() *Node {
	return &Node{Kind: KindLineBreak}
}

func CustomBlock(children ...*Node) *Node {
	return &Node{Kind: KindCustomBlock, Children: children}
}

func CustomInline(children ...*Node) *Node {
	return &Node{Kind: KindCustomInline, Children: children}
}

func BlockDirective(children ...*Node) *Node {
	return &Node{Kind: KindBlockDirective, Children: children}
}

func SymbolLink(children ...*Node) *Node {
	return &Node{Kind: KindSymbolLink, Children: children}
}

func InlineAttributes(children ...*Node) *Node {
	return &Node{Kind: KindInlineAttributes, Children: children}
}

// Package htmlfrag converts raw HTML fragments found in markdown documents
// into rich text.
package htmlfrag

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/csams/mdrich/internal/markdown"
)

// voidElements never have an end tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// blockElements end with a line break
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "table": true, "ul": true, "ol": true, "section": true,
	"article": true, "header": true, "footer": true, "details": true, "summary": true,
}

// Renderer converts HTML fragments. It is stateless.
type Renderer struct{}

// New creates a Renderer
func New() *Renderer {
	return &Renderer{}
}

// RenderHTML converts fragment to rich text. Fragments whose elements are
// not properly nested and closed are rejected.
func (r *Renderer) RenderHTML(fragment string) (markdown.RichText, bool) {
	if strings.TrimSpace(fragment) == "" || !wellFormed(fragment) {
		return nil, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, false
	}

	c := &converter{}
	c.walk(doc.Find("body"), markdown.Attrs{}, false)
	c.trimTrailingSpace()
	return c.out, true
}

// wellFormed reports whether every non-void start tag in fragment is
// matched by an end tag in the right order.
func wellFormed(fragment string) bool {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var open []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return z.Err() == io.EOF && len(open) == 0
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); !voidElements[tag] {
				open = append(open, tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[tag] {
				continue
			}
			if len(open) == 0 || open[len(open)-1] != tag {
				return false
			}
			open = open[:len(open)-1]
		}
	}
}

type converter struct {
	out markdown.RichText
}

func (c *converter) emit(text string, attrs markdown.Attrs) {
	if text == "" {
		return
	}
	// Merge with the previous run when nothing but the text differs.
	if n := len(c.out); n > 0 && c.out[n-1].Attrs == attrs {
		c.out[n-1].Text += text
		return
	}
	c.out = append(c.out, markdown.Run{Text: text, Attrs: attrs})
}

func (c *converter) walk(sel *goquery.Selection, attrs markdown.Attrs, pre bool) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch node.Type {
		case html.TextNode:
			text := node.Data
			if !pre {
				text = collapseSpace(text)
				if c.atLineStart() {
					text = strings.TrimLeft(text, " ")
				}
			}
			c.emit(text, attrs)
		case html.ElementNode:
			c.element(s, goquery.NodeName(s), attrs, pre)
		}
	})
}

func (c *converter) element(s *goquery.Selection, name string, attrs markdown.Attrs, pre bool) {
	inner := attrs
	switch name {
	case "br", "hr":
		c.endLine()
		return
	case "img":
		if alt, ok := s.Attr("alt"); ok {
			if src, ok := s.Attr("src"); ok {
				inner.Link = src
			}
			c.emit(alt, inner)
		}
		return
	case "script", "style", "head", "title":
		return
	case "b", "strong":
		inner.Weight = markdown.WeightBold
	case "i", "em", "cite":
		inner.Slant = markdown.SlantItalic
	case "s", "del", "strike":
		inner.Strike = true
	case "code", "tt", "kbd", "samp":
		inner.Monospace = true
	case "pre":
		inner.Monospace = true
		pre = true
	case "a":
		if href, ok := s.Attr("href"); ok && href != "" {
			inner.Link = href
		}
	case "h1":
		inner.HeadingLevel = 1
	case "h2":
		inner.HeadingLevel = 2
	case "h3":
		inner.HeadingLevel = 3
	case "h4", "h5", "h6":
		inner.Weight = markdown.WeightBold
	case "li":
		c.emit("• ", inner)
	}

	c.walk(s, inner, pre)

	if blockElements[name] && !c.atLineStart() {
		c.endLine()
	}
}

func (c *converter) atLineStart() bool {
	n := len(c.out)
	return n == 0 || strings.HasSuffix(c.out[n-1].Text, "\n")
}

// trimTrailingSpace drops collapsed spaces left at the end of the output
func (c *converter) trimTrailingSpace() {
	for n := len(c.out); n > 0; n = len(c.out) {
		last := &c.out[n-1]
		if last.Monospace {
			return
		}
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			return
		}
		c.out = c.out[:n-1]
	}
}

func (c *converter) endLine() {
	c.trimTrailingSpace()
	c.emit("\n", markdown.Attrs{})
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if strings.IndexFunc(s[:1], isSpace) == 0 {
		out = " " + out
	}
	if strings.IndexFunc(s[len(s)-1:], isSpace) == 0 {
		out += " "
	}
	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

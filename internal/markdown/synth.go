package markdown

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const bulletPrefix = "• "

// Synthesize turns a leaf text and the context it appears in into styled runs.
// Code produces two runs: the copy-code affordance followed by the code itself.
func Synthesize(ctx StyleContext, text string) (RichText, error) {
	var attrs Attrs

	if ctx.Link {
		if dest, ok := linkTarget(ctx.LinkDestination); ok {
			attrs.Link = dest
		}
	}

	// The prefix goes in the same run so it shares the text's font.
	content := text
	if ctx.UnorderedList {
		content = bulletPrefix + content
	} else if ctx.OrderedList {
		content = strconv.Itoa(ctx.Order) + ". " + content
	}

	// Later rules replace the font picked by earlier ones.
	f := bodyFont
	if ctx.Strong {
		f = boldFont
	}
	if ctx.Emphasis {
		f = italicFont
	}
	if ctx.Heading {
		if ctx.HeadingLevel < 1 || ctx.HeadingLevel > len(headingFonts) {
			return nil, errors.Wrapf(ErrHeadingLevelOutOfRange, "level %d", ctx.HeadingLevel)
		}
		f = headingFonts[ctx.HeadingLevel-1]
	}
	if ctx.CodeBlock {
		f = monospaceFont
	}
	f.apply(&attrs)

	attrs.Strike = ctx.Strikethrough

	run := Run{Text: content, Attrs: attrs}
	if ctx.CodeBlock {
		return RichText{copyCodeRun(text), run}, nil
	}
	return RichText{run}, nil
}

// linkTarget validates a link destination. Empty destinations and ones
// containing whitespace or control characters are rejected along with
// anything net/url cannot parse.
func linkTarget(dest string) (string, bool) {
	if dest == "" || strings.IndexFunc(dest, func(r rune) bool { return r <= ' ' || r == 0x7f }) >= 0 {
		return "", false
	}
	if _, err := url.Parse(dest); err != nil {
		return "", false
	}
	return dest, true
}

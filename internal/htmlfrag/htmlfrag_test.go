package htmlfrag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csams/mdrich/internal/markdown"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     markdown.RichText
	}{
		{
			name:     "block with bold",
			fragment: "<div>\n<b>hi</b>\n</div>\n",
			want: markdown.RichText{
				{Text: "hi", Attrs: markdown.Attrs{Weight: markdown.WeightBold}},
				{Text: "\n"},
			},
		},
		{
			name:     "paragraph with link",
			fragment: `<p>see <a href="http://apple.es">Apple</a></p>`,
			want: markdown.RichText{
				{Text: "see "},
				{Text: "Apple", Attrs: markdown.Attrs{Link: "http://apple.es"}},
				{Text: "\n"},
			},
		},
		{
			name:     "line breaks",
			fragment: "Line 1<br>Line 2<BR/>Line 3",
			want: markdown.RichText{
				{Text: "Line 1\nLine 2\nLine 3"},
			},
		},
		{
			name:     "nested styles",
			fragment: "<em>a <strong>b</strong></em><del>c</del>",
			want: markdown.RichText{
				{Text: "a ", Attrs: markdown.Attrs{Slant: markdown.SlantItalic}},
				{Text: "b", Attrs: markdown.Attrs{Slant: markdown.SlantItalic, Weight: markdown.WeightBold}},
				{Text: "c", Attrs: markdown.Attrs{Strike: true}},
			},
		},
		{
			name:     "list items",
			fragment: "<ul>\n<li>one</li>\n<li>two</li>\n</ul>",
			want: markdown.RichText{
				{Text: "• one\n• two\n"},
			},
		},
		{
			name:     "headings",
			fragment: "<h2>Title</h2>",
			want: markdown.RichText{
				{Text: "Title", Attrs: markdown.Attrs{HeadingLevel: 2}},
				{Text: "\n"},
			},
		},
		{
			name:     "preformatted keeps spacing",
			fragment: "<pre>a  b\n  c</pre>",
			want: markdown.RichText{
				{Text: "a  b\n  c", Attrs: markdown.Attrs{Monospace: true}},
				{Text: "\n"},
			},
		},
		{
			name:     "comment only",
			fragment: "<!-- nothing -->",
			want:     nil,
		},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.RenderHTML(tt.fragment)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderHTML_Rejects(t *testing.T) {
	tests := []string{
		"",
		"   \n",
		"<b>",
		"</b>",
		"<div><b>x</div></b>",
		"<p>unclosed",
		"<div>\n",
	}

	r := New()
	for _, fragment := range tests {
		t.Run(fragment, func(t *testing.T) {
			got, ok := r.RenderHTML(fragment)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestRenderHTML_InDocument(t *testing.T) {
	doc := markdown.ParseString("<div>\n\n**after**\n\n<p><i>x</i></p>\n")

	rt, err := markdown.NewRenderer(markdown.WithHTMLRenderer(New())).Render(doc)
	require.NoError(t, err)
	assert.Contains(t, rt, markdown.Run{Text: "after", Attrs: markdown.Attrs{Weight: markdown.WeightBold}})
	assert.Contains(t, rt, markdown.Run{Text: "x", Attrs: markdown.Attrs{Slant: markdown.SlantItalic}})
}

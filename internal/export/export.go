// Package export encodes rendered rich text for output streams.
package export

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-wordwrap"

	"github.com/csams/mdrich/internal/markdown"
)

// Format names an output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatANSI Format = "ansi"
)

// ErrUnknownFormat is returned for format names ParseFormat does not know
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported formats
var Formats = []Format{FormatText, FormatJSON, FormatANSI}

// ParseFormat resolves a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// Write encodes rt to w in the given format. The ANSI encoder uses a
// lipgloss renderer bound to w.
func Write(w io.Writer, rt markdown.RichText, format Format) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, rt.String())
		return errors.Wrap(err, "write text")
	case FormatJSON:
		return WriteJSON(w, rt)
	case FormatANSI:
		_, err := io.WriteString(w, NewANSIEncoder(lipgloss.NewRenderer(w)).Encode(rt))
		return errors.Wrap(err, "write ansi")
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", format)
}

// WriteWrapped writes rt as plain text, breaking lines at spaces so they
// fit in width columns where possible
func WriteWrapped(w io.Writer, rt markdown.RichText, width int) error {
	if width <= 0 {
		return Write(w, rt, FormatText)
	}
	_, err := io.WriteString(w, wordwrap.WrapString(rt.String(), uint(width)))
	return errors.Wrap(err, "write text")
}

// WriteJSON writes rt as an indented JSON array of runs
func WriteJSON(w io.Writer, rt markdown.RichText) error {
	if rt == nil {
		rt = markdown.RichText{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rt); err != nil {
		return errors.Wrap(err, "encode json")
	}
	return nil
}

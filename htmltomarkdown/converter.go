// Package htmltomarkdown provides the generic HTML to text pass using
// JohannesKaufmann/html-to-markdown. Its output is plain text with Markdown
// structure; the math restorer and heading rules run on it afterwards.
package htmltomarkdown

import (
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/web2adoc"
)

var _ web2adoc.Converter = (*Converter)(nil)

// Converter turns prepared pages into text with ATX headings ("## Title").
//
// html-to-markdown re-escapes characters such as < > and & as entities so
// that the Markdown stays inert HTML. AsciiDoc has no such need, and the
// LaTeX carried by math placeholders must come back verbatim, so Convert
// decodes entities in the result.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{conv: converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)}
}

// Convert transforms a prepared page into text.
func (c *Converter) Convert(page string) (string, error) {
	if strings.TrimSpace(page) == "" {
		return "", web2adoc.Errorf(web2adoc.EINVALID, "empty HTML input")
	}

	text, err := c.conv.ConvertString(page)
	if err != nil {
		return "", web2adoc.Errorf(web2adoc.EINTERNAL, "converting HTML: %v", err)
	}
	return html.UnescapeString(text), nil
}

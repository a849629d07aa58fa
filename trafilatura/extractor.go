// Package trafilatura narrows a prepared page to its main content using
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/web2adoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements web2adoc.Extractor at compile time.
var _ web2adoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Recall is favoured over precision:
// a paragraph of prose around a formula is worth more than a tidy result.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			FavorRecall:     true,
			ExcludeComments: true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*web2adoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, web2adoc.Errorf(web2adoc.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, web2adoc.Errorf(web2adoc.ENOTFOUND, "trafilatura: %v", err)
	}
	if result.ContentNode == nil {
		return nil, web2adoc.Errorf(web2adoc.ENOTFOUND, "no main content found")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &web2adoc.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

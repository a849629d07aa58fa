// Package readability narrows a prepared page to its main article using
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/web2adoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements web2adoc.Extractor at compile time.
var _ web2adoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article body of rawHTML. A page readability cannot
// score yields ENOTFOUND so the caller can keep the whole page instead.
func (e *Extractor) Extract(rawHTML string) (*web2adoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, web2adoc.Errorf(web2adoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, web2adoc.Errorf(web2adoc.EINVALID, "readability: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, web2adoc.Errorf(web2adoc.ENOTFOUND, "no main content found")
	}

	return &web2adoc.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}

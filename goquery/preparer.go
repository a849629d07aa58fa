// Package goquery prepares web pages for conversion using goquery: it strips
// non-content markup and shields math behind placeholder tokens.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/web2adoc"
)

// Ensure Preparer implements web2adoc.Preparer at compile time.
var _ web2adoc.Preparer = (*Preparer)(nil)

// Preparer cleans a page and protects its math.
type Preparer struct {
	Cleaner *Cleaner
	Math    *MathExtractor
}

// NewPreparer creates a Preparer with default cleaning and math settings.
func NewPreparer() *Preparer {
	return &Preparer{
		Cleaner: NewCleaner(),
		Math:    NewMathExtractor(),
	}
}

// Prepare parses rawHTML, removes non-content elements, replaces math with
// placeholders and renders the result back to HTML.
func (p *Preparer) Prepare(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", web2adoc.Errorf(web2adoc.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", web2adoc.Errorf(web2adoc.EINVALID, "failed to parse HTML: %v", err)
	}

	p.Cleaner.Clean(doc.Selection)
	p.Math.Protect(doc.Selection)

	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	return out, nil
}

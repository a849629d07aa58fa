package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultArtifactFingerprints are class names of containers holding a
// rendered copy of math whose source the MathExtractor already captures.
var DefaultArtifactFingerprints = []string{
	"katex-html",
	"MathJax_Display",
	"MathJax_Preview",
}

// DefaultNonContentTags are removed entirely before conversion.
var DefaultNonContentTags = []string{
	"script",
	"style",
	"nav",
	"header",
	"footer",
	"aside",
}

// Cleaner removes non-content subtrees from a parsed page.
type Cleaner struct {
	// Fingerprints are class names that mark a span or div as a math
	// rendering artifact.
	Fingerprints []string

	// Tags are element names removed with their subtrees.
	Tags []string
}

// NewCleaner creates a Cleaner with the default fingerprints and tags.
func NewCleaner() *Cleaner {
	return &Cleaner{
		Fingerprints: DefaultArtifactFingerprints,
		Tags:         DefaultNonContentTags,
	}
}

// Clean removes rendering artifacts and non-content elements below root.
func (c *Cleaner) Clean(root *goquery.Selection) {
	root.Find("span[class], div[class]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return c.IsArtifact(sel)
	}).Remove()

	if len(c.Tags) > 0 {
		root.Find(strings.Join(c.Tags, ", ")).Remove()
	}
}

// IsArtifact reports whether sel is a span or div carrying one of the
// artifact fingerprints as a class name.
func (c *Cleaner) IsArtifact(sel *goquery.Selection) bool {
	name := goquery.NodeName(sel)
	if name != "span" && name != "div" {
		return false
	}
	for _, class := range strings.Fields(sel.AttrOr("class", "")) {
		if slices.Contains(c.Fingerprints, class) {
			return true
		}
	}
	return false
}

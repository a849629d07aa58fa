package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/web2adoc"
	"golang.org/x/net/html"
)

// TeXEncoding is the annotation encoding that carries a formula's source.
const TeXEncoding = "application/x-tex"

// DefaultWrapperClass marks the span a math renderer wraps around MathML.
const DefaultWrapperClass = "katex"

// MathExtractor replaces MathML elements with placeholder tokens.
type MathExtractor struct {
	Markers web2adoc.Markers

	// WrapperClass is matched as a substring of the parent span's class
	// names. A matching parent is replaced together with the math element.
	WrapperClass string
}

// NewMathExtractor creates a MathExtractor with the default markers.
func NewMathExtractor() *MathExtractor {
	return &MathExtractor{
		Markers:      web2adoc.DefaultMarkers,
		WrapperClass: DefaultWrapperClass,
	}
}

// MathNode reads the formula held by a math element. The TeX annotation is
// preferred; without one the element's text content is used.
func (e *MathExtractor) MathNode(sel *goquery.Selection) web2adoc.MathNode {
	var src string
	if ann := sel.Find(`annotation[encoding="` + TeXEncoding + `"]`).First(); ann.Length() > 0 {
		src = ann.Text()
	} else {
		src = sel.Text()
	}
	return web2adoc.MathNode{
		Source: strings.TrimSpace(src),
		Block:  sel.AttrOr("display", "") == "block",
	}
}

// Protect replaces every top-level math element below root with a text node
// holding its placeholder and returns how many were replaced. Math with no
// recoverable source is removed.
func (e *MathExtractor) Protect(root *goquery.Selection) int {
	n := 0
	root.Find("math").Each(func(_ int, sel *goquery.Selection) {
		if sel.ParentsFiltered("math").Length() > 0 {
			return
		}

		target := sel
		if parent := sel.Parent(); e.isWrapper(parent) {
			target = parent
		}

		node := e.MathNode(sel)
		if node.Source == "" {
			target.Remove()
			return
		}

		target.ReplaceWithNodes(&html.Node{
			Type: html.TextNode,
			Data: node.Placeholder(e.Markers),
		})
		n++
	})
	return n
}

func (e *MathExtractor) isWrapper(sel *goquery.Selection) bool {
	if e.WrapperClass == "" || goquery.NodeName(sel) != "span" {
		return false
	}
	return strings.Contains(sel.AttrOr("class", ""), e.WrapperClass)
}

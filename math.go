package web2adoc

import "strings"

// Markers are the placeholder tokens that shield math from the generic
// converter. Each must be a string that never occurs in ordinary page text
// and that the converter passes through untouched.
type Markers struct {
	Backslash   string
	BlockStart  string
	BlockEnd    string
	InlineStart string
	InlineEnd   string
}

// DefaultMarkers contain only upper-case ASCII letters so Markdown escaping
// never splits or rewrites them.
var DefaultMarkers = Markers{
	Backslash:   "XQBACKSLASHQX",
	BlockStart:  "XQBLOCKMATHSTARTQX",
	BlockEnd:    "XQBLOCKMATHENDQX",
	InlineStart: "XQINLINEMATHSTARTQX",
	InlineEnd:   "XQINLINEMATHENDQX",
}

// MathNode is a math element located in a page.
type MathNode struct {
	// Source is the LaTeX source of the formula.
	Source string

	// Block is true for display math.
	Block bool
}

// Placeholder returns the token that replaces n in the page before
// conversion. Backslashes in the source are swapped for the backslash marker
// so Markdown escaping cannot alter command sequences.
func (n MathNode) Placeholder(m Markers) string {
	src := strings.ReplaceAll(NormalizeLaTeX(n.Source), `\`, m.Backslash)
	if n.Block {
		return m.BlockStart + src + m.BlockEnd
	}
	return m.InlineStart + src + m.InlineEnd
}

// NormalizeLaTeX rewrites \sim to a literal tilde. Longer commands that
// start with the same letters (\simeq, \simplex) are left alone.
func NormalizeLaTeX(src string) string {
	return replaceIsolated(src, `\sim`, "~", false)
}

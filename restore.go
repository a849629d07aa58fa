package web2adoc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Repair is a literal replacement for one observed corruption instance.
type Repair struct {
	Corrupted string
	Correct   string
}

// DefaultTrailingSymbols is the set of characters the math renderer tends to
// echo as plain text right after a formula: a handful of Latin letters,
// digits, Greek, letterlike symbols, mathematical operators and supplemental
// operators. The membership is empirical.
var DefaultTrailingSymbols = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: '0', Hi: '9', Stride: 1},
		{Lo: 'A', Hi: 'A', Stride: 1},
		{Lo: 'C', Hi: 'D', Stride: 1},
		{Lo: 'I', Hi: 'I', Stride: 1},
		{Lo: 'L', Hi: 'L', Stride: 1},
		{Lo: 'O', Hi: 'P', Stride: 1},
		{Lo: 'R', Hi: 'S', Stride: 1},
		{Lo: 'p', Hi: 'q', Stride: 1},
		{Lo: 'x', Hi: 'x', Stride: 1},
		{Lo: 0x0370, Hi: 0x03ff, Stride: 1},
		{Lo: 0x2100, Hi: 0x214f, Stride: 1},
		{Lo: 0x2200, Hi: 0x22ff, Stride: 1},
		{Lo: 0x2a00, Hi: 0x2aff, Stride: 1},
	},
	LatinOffset: 9,
}

// DefaultArtifacts are LaTeX sizing and delimiter command fragments left
// behind by the renderer. Each is removed with or without a leading
// backslash, but only when it is not glued to other letters.
var DefaultArtifacts = []string{
	"Bigl", "Bigr", "bigl", "bigr",
	"left", "right",
	"igl", "igr", "ight",
}

// DefaultFormulaRepairs fix two garbled variable-distribution expressions.
var DefaultFormulaRepairs = []Repair{
	{Corrupted: "xsimpθ", Correct: `x ~ p_\theta`},
	{Corrupted: "xsimq", Correct: "x ~ q"},
}

// DefaultBracketRepairs fix a known bracket-nesting corruption.
var DefaultBracketRepairs = []Repair{
	{Corrupted: "[[A(x)[]", Correct: "[A(x)]"},
	{Corrupted: `\B]`, Correct: "]"},
}

// maxTrailingSymbols bounds the length of a stray symbol run.
const maxTrailingSymbols = 10

const stemOpen = "stem:["

// Restorer turns converted text that still carries math placeholders into
// AsciiDoc, then repairs the artifacts the converter and the math renderer
// leave behind. The fields are configuration data; NewRestorer returns the
// defaults.
type Restorer struct {
	Markers         Markers
	TrailingSymbols *unicode.RangeTable
	Artifacts       []string
	FormulaRepairs  []Repair
	BracketRepairs  []Repair
}

// NewRestorer returns a Restorer with the default markers and rule tables.
func NewRestorer() *Restorer {
	return &Restorer{
		Markers:         DefaultMarkers,
		TrailingSymbols: DefaultTrailingSymbols,
		Artifacts:       DefaultArtifacts,
		FormulaRepairs:  DefaultFormulaRepairs,
		BracketRepairs:  DefaultBracketRepairs,
	}
}

// Restore applies the restoration passes in order. Each pass assumes the
// previous ones already ran.
func (r *Restorer) Restore(text string) string {
	text = r.restoreBlocks(text)
	text = strings.ReplaceAll(text, r.Markers.InlineStart, " stem:[")
	text = strings.ReplaceAll(text, r.Markers.InlineEnd, "] ")
	text = strings.ReplaceAll(text, r.Markers.Backslash, `\`)

	text = strings.ReplaceAll(text, `\-`, "-")
	text = strings.ReplaceAll(text, `\_`, "_")
	text = strings.ReplaceAll(text, `\*`, "*")

	text = r.stripTrailingSymbols(text)

	for _, a := range r.Artifacts {
		text = replaceIsolated(text, `\`+a, "", false)
		text = replaceIsolated(text, a, "", true)
	}

	text = applyRepairs(text, r.FormulaRepairs)

	text = replaceIsolated(text, `\b`, "[", true)
	text = replaceIsolated(text, `\B`, "]", true)

	text = strings.ReplaceAll(text, `\[`, "[")
	text = strings.ReplaceAll(text, `\]`, "]")
	text = strings.ReplaceAll(text, `\(`, "(")
	text = strings.ReplaceAll(text, `\)`, ")")

	text = applyRepairs(text, r.BracketRepairs)

	text = replaceIsolated(text, "ight", "", true)
	text = replaceIsolated(text, "left", "", true)

	return text
}

// restoreBlocks rewrites every block placeholder pair as a [stem] passthrough
// block. Block math may span lines. Unpaired block markers are dropped.
func (r *Restorer) restoreBlocks(text string) string {
	re := regexp.MustCompile("(?s)" + regexp.QuoteMeta(r.Markers.BlockStart) + "(.*?)" + regexp.QuoteMeta(r.Markers.BlockEnd))
	text = re.ReplaceAllString(text, "\n\n[stem]\n++++\n${1}\n++++\n\n")
	text = strings.ReplaceAll(text, r.Markers.BlockStart, "")
	return strings.ReplaceAll(text, r.Markers.BlockEnd, "")
}

// stripTrailingSymbols removes short runs of stray symbols that directly
// follow a stem:[...] macro, repeating until no run is left.
func (r *Restorer) stripTrailingSymbols(text string) string {
	for {
		next := r.stripTrailingSymbolsOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

// stripTrailingSymbolsOnce makes one left-to-right pass over text. A match is
// "stem:[" followed by the shortest bracketed body on the same line that is
// followed by optional whitespace, then 1 to 10 trailing symbols, then
// whitespace, '.', ',' or the end of the text. The whitespace and the
// symbols are removed.
func (r *Restorer) stripTrailingSymbolsOnce(text string) string {
	var b strings.Builder
	pos, search := 0, 0
	matched := false
	for {
		i := strings.Index(text[search:], stemOpen)
		if i < 0 {
			break
		}
		start := search + i
		closeAt, end, ok := r.matchTrailingSymbols(text, start+len(stemOpen))
		if !ok {
			search = start + 1
			continue
		}
		b.WriteString(text[pos : closeAt+1])
		pos, search = end, end
		matched = true
	}
	if !matched {
		return text
	}
	b.WriteString(text[pos:])
	return b.String()
}

// matchTrailingSymbols tries every closing bracket on the current line, from
// the nearest outward, and reports the first one followed by a removable run.
func (r *Restorer) matchTrailingSymbols(text string, from int) (int, int, bool) {
	for j := from; j < len(text) && text[j] != '\n'; j++ {
		if text[j] != ']' {
			continue
		}
		if end, ok := r.trailingRun(text, j+1); ok {
			return j, end, true
		}
	}
	return 0, 0, false
}

// trailingRun reports where a removable symbol run starting at i ends.
func (r *Restorer) trailingRun(text string, i int) (int, bool) {
	for i < len(text) {
		c, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(c) {
			break
		}
		i += size
	}

	n := 0
	for i < len(text) {
		c, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.Is(r.TrailingSymbols, c) {
			break
		}
		n++
		i += size
	}
	if n == 0 || n > maxTrailingSymbols {
		return 0, false
	}

	if i == len(text) {
		return i, true
	}
	c, _ := utf8.DecodeRuneInString(text[i:])
	return i, unicode.IsSpace(c) || c == '.' || c == ','
}

func applyRepairs(text string, repairs []Repair) string {
	for _, rep := range repairs {
		text = strings.ReplaceAll(text, rep.Corrupted, rep.Correct)
	}
	return text
}

// replaceIsolated replaces occurrences of token that are not directly
// followed by an ASCII letter. With leftGuard set, occurrences directly
// preceded by an ASCII letter are skipped too. Neighbours are always read
// from the original text.
func replaceIsolated(text, token, repl string, leftGuard bool) string {
	if token == "" || !strings.Contains(text, token) {
		return text
	}

	var b strings.Builder
	pos := 0
	matched := false
	for i := 0; i < len(text); {
		j := strings.Index(text[i:], token)
		if j < 0 {
			break
		}
		at := i + j
		end := at + len(token)
		if (leftGuard && at > 0 && isASCIILetter(text[at-1])) || (end < len(text) && isASCIILetter(text[end])) {
			i = at + 1
			continue
		}
		b.WriteString(text[pos:at])
		b.WriteString(repl)
		pos, i = end, end
		matched = true
	}
	if !matched {
		return text
	}
	b.WriteString(text[pos:])
	return b.String()
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

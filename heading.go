package web2adoc

import (
	"regexp"
	"strings"
)

var (
	hashHeadingRe   = regexp.MustCompile(`^(#+)\s`)
	equalsHeadingRe = regexp.MustCompile(`^(=+)\s`)
)

// AdjustHeadings rewrites heading markers for inclusion under a document
// title. Markdown headings ("## Title") become AsciiDoc headings
// ("== Title"). Levels never skip: a heading deeper than one below the
// deepest level seen so far is clamped to that level. Every heading is then
// shifted down one level so that level 0 stays free for the document title.
//
// Lines inside fenced code blocks are left alone.
func AdjustHeadings(text string) string {
	lines := strings.Split(text, "\n")
	inFence := false
	current := 0 // level 0 is the document title
	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		if m := hashHeadingRe.FindStringSubmatch(line); m != nil {
			line = strings.Repeat("=", len(m[1])) + line[len(m[1]):]
			lines[i] = line
		}

		m := equalsHeadingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := min(len(m[1]), current+1)
		current = level
		lines[i] = strings.Repeat("=", level+1) + line[len(m[1]):]
	}
	return strings.Join(lines, "\n")
}

// HeadingLevel returns the AsciiDoc section level of line, or -1 if the line
// is not a heading. "= Title" is level 0.
func HeadingLevel(line string) int {
	m := equalsHeadingRe.FindStringSubmatch(line)
	if m == nil {
		return -1
	}
	return len(m[1]) - 1
}

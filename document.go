package web2adoc

import (
	"context"
	"strings"
)

// Section is the converted content of one source page.
type Section struct {
	URL     string
	Content string

	// Hash identifies the content; sections with equal hashes are duplicates.
	Hash string
}

// Document is the assembled output: a synthetic title, the stem attribute
// that enables math rendering, and one section per source page.
type Document struct {
	Title    string
	Sections []*Section
}

// NewDocument returns an empty document with the given title.
func NewDocument(title string) *Document {
	return &Document{Title: title}
}

// Append adds s to the document. It returns false, leaving the document
// unchanged, when a section with the same non-empty hash is already present.
func (d *Document) Append(s *Section) bool {
	if s.Hash != "" {
		for _, existing := range d.Sections {
			if existing.Hash == s.Hash {
				return false
			}
		}
	}
	d.Sections = append(d.Sections, s)
	return true
}

// String renders the document as AsciiDoc.
func (d *Document) String() string {
	var b strings.Builder
	b.WriteString("= ")
	b.WriteString(d.Title)
	b.WriteString("\n:stem:\n\n")
	for _, s := range d.Sections {
		b.WriteString(s.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

// DedupeURLs returns urls with repeats removed, keeping the first occurrence
// of each in its original position.
func DedupeURLs(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// DropLastLine trims surrounding whitespace from text and removes its final
// line, which on converted pages is a trailing navigation or artifact line.
func DropLastLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.Join(lines[:len(lines)-1], "\n")
}

// DocumentWriter persists assembled documents.
type DocumentWriter interface {
	// NextName returns the next unused output file name, e.g. "doc_004.ad".
	NextName() (string, error)

	// WriteDocument writes doc to the file called name and returns its path.
	WriteDocument(ctx context.Context, name string, doc *Document) (string, error)
}

package web2adoc

// Converter converts HTML to line-oriented structured text (Markdown), with
// headings as '#'-prefixed lines.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be prepared HTML (see Preparer).
	Convert(html string) (string, error)
}

// Preparer readies raw page HTML for the generic conversion pass: it removes
// non-content subtrees and replaces math elements with placeholder tokens.
type Preparer interface {
	Prepare(html string) (string, error)
}

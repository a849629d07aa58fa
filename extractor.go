package web2adoc

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as HTML.
	ContentHTML string
}

// Extractor narrows a page down to its main content before cleaning.
// It is an optional stage; most pages convert fine without it.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

package mock

import "github.com/fwojciec/web2adoc"

var _ web2adoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of web2adoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*web2adoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*web2adoc.ExtractResult, error) {
	return e.ExtractFn(html)
}

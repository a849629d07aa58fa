package mock

import "github.com/fwojciec/web2adoc"

var _ web2adoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of web2adoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ web2adoc.Preparer = (*Preparer)(nil)

// Preparer is a mock implementation of web2adoc.Preparer.
type Preparer struct {
	PrepareFn func(html string) (string, error)
}

func (p *Preparer) Prepare(html string) (string, error) {
	return p.PrepareFn(html)
}

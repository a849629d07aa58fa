package mock

import (
	"context"

	"github.com/fwojciec/web2adoc"
)

var _ web2adoc.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of web2adoc.DocumentWriter.
type DocumentWriter struct {
	NextNameFn      func() (string, error)
	WriteDocumentFn func(ctx context.Context, name string, doc *web2adoc.Document) (string, error)
}

func (w *DocumentWriter) NextName() (string, error) {
	return w.NextNameFn()
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, name string, doc *web2adoc.Document) (string, error) {
	return w.WriteDocumentFn(ctx, name, doc)
}

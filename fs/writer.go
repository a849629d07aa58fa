// Package fs writes assembled documents to a local directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/fwojciec/web2adoc"
)

// Extension is the file extension of written documents.
const Extension = ".ad"

var namePattern = regexp.MustCompile(`^doc_(\d{3})\.ad$`)

// Ensure Writer implements web2adoc.DocumentWriter at compile time.
var _ web2adoc.DocumentWriter = (*Writer)(nil)

// Writer writes documents as sequentially numbered AsciiDoc files
// (doc_001.ad, doc_002.ad, ...) to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// NextName returns the name one past the highest existing doc_NNN.ad in the
// directory. Gaps in the sequence are not reused. A missing directory
// yields doc_001.ad.
func (w *Writer) NextName() (string, error) {
	entries, err := os.ReadDir(w.baseDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	highest := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := namePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}

	return fmt.Sprintf("doc_%03d%s", highest+1, Extension), nil
}

// WriteDocument writes doc as UTF-8 text to name inside the base directory
// and returns the full path.
func (w *Writer) WriteDocument(ctx context.Context, name string, doc *web2adoc.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name {
		return "", web2adoc.Errorf(web2adoc.EINVALID, "invalid document name %q", name)
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, name)
	if err := os.WriteFile(fullPath, []byte(doc.String()), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}

package assemble_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/web2adoc"
	"github.com/fwojciec/web2adoc/assemble"
	"github.com/fwojciec/web2adoc/goquery"
	"github.com/fwojciec/web2adoc/htmltomarkdown"
	"github.com/fwojciec/web2adoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAssembler returns an Assembler whose preparer and converter pass text
// through unchanged, so pages can be written directly as Markdown.
func newAssembler(pages map[string]string, fetchCount map[string]int) *assemble.Assembler {
	return &assemble.Assembler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if fetchCount != nil {
					fetchCount[url]++
				}
				page, ok := pages[url]
				if !ok {
					return "", web2adoc.Errorf(web2adoc.ENOTFOUND, "HTTP 404 for %s", url)
				}
				return page, nil
			},
		},
		Preparer: &mock.Preparer{
			PrepareFn: func(html string) (string, error) { return html, nil },
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) { return html, nil },
		},
		Restorer: web2adoc.NewRestorer(),
	}
}

func TestAssembler_Assemble(t *testing.T) {
	t.Parallel()

	t.Run("builds sections in input order", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(map[string]string{
			"https://example.com/a": "# Alpha\n\nFirst page.\nNext >",
			"https://example.com/b": "# Beta\n\nSecond page.\nNext >",
		}, nil)

		doc, result, err := a.Assemble(context.Background(), "doc_001",
			[]string{"https://example.com/a", "https://example.com/b"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Converted)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t,
			"= doc_001\n:stem:\n\n== Alpha\n\nFirst page.\n\n== Beta\n\nSecond page.\n\n",
			doc.String())
	})

	t.Run("repeated URLs are fetched and emitted once", func(t *testing.T) {
		t.Parallel()

		counts := map[string]int{}
		a := newAssembler(map[string]string{
			"https://example.com/a": "# Alpha\n\nBody.\nfooter",
		}, counts)

		doc, result, err := a.Assemble(context.Background(), "doc_001",
			[]string{"https://example.com/a", "https://example.com/a"}, nil)

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		assert.Equal(t, 1, counts["https://example.com/a"])
		assert.Equal(t, 1, result.Converted)
	})

	t.Run("failed page is skipped and the rest kept", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(map[string]string{
			"https://example.com/a": "# Alpha\n\nBody.\nfooter",
			"https://example.com/c": "# Gamma\n\nBody.\nfooter",
		}, nil)

		var events []assemble.ProgressEvent
		doc, result, err := a.Assemble(context.Background(), "doc_001",
			[]string{"https://example.com/a", "https://example.com/missing", "https://example.com/c"},
			func(e assemble.ProgressEvent) { events = append(events, e) })

		require.NoError(t, err)
		assert.Equal(t, 2, result.Converted)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, doc.Sections, 2)
		assert.Equal(t, "https://example.com/a", doc.Sections[0].URL)
		assert.Equal(t, "https://example.com/c", doc.Sections[1].URL)

		var failed []assemble.ProgressEvent
		for _, e := range events {
			if e.Type == assemble.ProgressFailed {
				failed = append(failed, e)
			}
		}
		require.Len(t, failed, 1)
		assert.Equal(t, "https://example.com/missing", failed[0].URL)
		assert.Equal(t, web2adoc.ENOTFOUND, web2adoc.ErrorCode(failed[0].Error))
		assert.Equal(t, assemble.ProgressStarted, events[0].Type)
		assert.Equal(t, assemble.ProgressFinished, events[len(events)-1].Type)
	})

	t.Run("identical content from distinct URLs is emitted once", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(map[string]string{
			"https://example.com/a":        "# Alpha\n\nBody.\nfooter",
			"https://mirror.example.com/a": "# Alpha\n\nBody.\nother footer",
		}, nil)

		doc, result, err := a.Assemble(context.Background(), "doc_001",
			[]string{"https://example.com/a", "https://mirror.example.com/a"}, nil)

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		assert.Equal(t, 1, result.Duplicates)
		assert.NotEmpty(t, doc.Sections[0].Hash)
	})

	t.Run("empty pages are all kept", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(map[string]string{
			"https://example.com/a": "only a footer",
			"https://example.com/b": "another footer",
		}, nil)

		doc, _, err := a.Assemble(context.Background(), "doc_001",
			[]string{"https://example.com/a", "https://example.com/b"}, nil)

		require.NoError(t, err)
		assert.Len(t, doc.Sections, 2)
	})

	t.Run("no URLs yields an empty document", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(nil, nil)

		doc, result, err := a.Assemble(context.Background(), "doc_002", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "= doc_002\n:stem:\n\n", doc.String())
		assert.Equal(t, &assemble.Result{}, result)
	})

	t.Run("cancellation stops processing and keeps finished pages", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		a := newAssembler(nil, nil)
		a.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/b" {
					cancel()
					return "", context.Canceled
				}
				return "# Page\n\nBody.\nfooter", nil
			},
		}

		doc, result, err := a.Assemble(ctx, "doc_001",
			[]string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Len(t, doc.Sections, 1)
		assert.Equal(t, 1, result.Converted)
		assert.Equal(t, 0, result.Failed)
	})
}

func TestAssembler_Section(t *testing.T) {
	t.Parallel()

	t.Run("waits on the rate limiter with the URL host", func(t *testing.T) {
		t.Parallel()

		var domains []string
		a := newAssembler(map[string]string{
			"https://docs.example.com/x": "# X\n\nBody.\nfooter",
		}, nil)
		a.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				domains = append(domains, domain)
				return nil
			},
		}

		_, err := a.Section(context.Background(), "https://docs.example.com/x")

		require.NoError(t, err)
		assert.Equal(t, []string{"docs.example.com"}, domains)
	})

	t.Run("retries failed fetches", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		a := newAssembler(nil, nil)
		a.RetryDelays = []time.Duration{0, 0}
		a.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				attempts++
				if attempts < 3 {
					return "", errors.New("connection reset")
				}
				return "# Ok\n\nBody.\nfooter", nil
			},
		}

		s, err := a.Section(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, "== Ok\n\nBody.", s.Content)
	})

	t.Run("uses extracted content when available", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(map[string]string{
			"https://example.com/": "# Whole page\n\nBody.\nfooter",
		}, nil)
		a.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*web2adoc.ExtractResult, error) {
				return &web2adoc.ExtractResult{ContentHTML: "# Main\n\nArticle.\nfooter"}, nil
			},
		}

		s, err := a.Section(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "== Main\n\nArticle.", s.Content)
	})

	t.Run("falls back to the whole page when extraction fails", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(map[string]string{
			"https://example.com/": "# Whole page\n\nBody.\nfooter",
		}, nil)
		a.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*web2adoc.ExtractResult, error) {
				return nil, web2adoc.Errorf(web2adoc.ENOTFOUND, "no main content found")
			},
		}

		s, err := a.Section(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "== Whole page\n\nBody.", s.Content)
	})

	t.Run("reports converter errors", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(map[string]string{"https://example.com/": "x"}, nil)
		a.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("bad markup")
			},
		}

		_, err := a.Section(context.Background(), "https://example.com/")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "convert: bad markup")
	})

	t.Run("full pipeline turns KaTeX into stem macros", func(t *testing.T) {
		t.Parallel()

		page := `<html><body>
<nav>Menu</nav>
<h1>Intervals</h1>
<p>Value <span class="katex"><math><semantics><mrow><mi>x</mi></mrow><annotation encoding="application/x-tex">\left(x\right)</annotation></semantics></math><span class="katex-html" aria-hidden="true">(x)</span></span> here.</p>
<p>Previous page</p>
</body></html>`

		a := &assemble.Assembler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return page, nil },
			},
			Preparer:  goquery.NewPreparer(),
			Converter: htmltomarkdown.NewConverter(),
			Restorer:  web2adoc.NewRestorer(),
		}

		s, err := a.Section(context.Background(), "https://example.com/intervals")

		require.NoError(t, err)
		assert.Contains(t, s.Content, "== Intervals")
		assert.Contains(t, s.Content, "stem:[(x)]")
		assert.NotContains(t, s.Content, "left")
		assert.NotContains(t, s.Content, "XQ")
		assert.NotContains(t, s.Content, "Menu")
		assert.NotContains(t, s.Content, "Previous page")
	})

	t.Run("full pipeline keeps inequalities in math and prose", func(t *testing.T) {
		t.Parallel()

		page := `<html><body>
<h1>Bounds</h1>
<p>Take <span class="katex"><math><semantics><mrow><mi>x</mi></mrow><annotation encoding="application/x-tex">0 &lt; x &gt; y</annotation></semantics></math></span> as given.</p>
<math display="block"><semantics><mrow><mi>f</mi></mrow><annotation encoding="application/x-tex">\begin{cases} a &amp; x &lt; 0 \end{cases}</annotation></semantics></math>
<p>Also a &lt; b and c &gt; d &amp; e.</p>
<p>Next</p>
</body></html>`

		a := &assemble.Assembler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return page, nil },
			},
			Preparer:  goquery.NewPreparer(),
			Converter: htmltomarkdown.NewConverter(),
			Restorer:  web2adoc.NewRestorer(),
		}

		s, err := a.Section(context.Background(), "https://example.com/bounds")

		require.NoError(t, err)
		assert.Contains(t, s.Content, "stem:[0 < x > y]")
		assert.Contains(t, s.Content, "[stem]\n++++")
		assert.Contains(t, s.Content, "a & x < 0")
		assert.Contains(t, s.Content, "Also a < b and c > d & e.")
		assert.NotContains(t, s.Content, "&lt;")
		assert.NotContains(t, s.Content, "&gt;")
		assert.NotContains(t, s.Content, "&amp;")
	})
}

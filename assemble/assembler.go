// Package assemble turns a list of page URLs into a single AsciiDoc document.
// Pages are processed one at a time, in input order. A page that fails at any
// stage is reported and skipped; it never aborts the run.
package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/web2adoc"
)

// Assembler drives fetch, prepare, convert and restore for every URL and
// collects the results into a web2adoc.Document.
type Assembler struct {
	Fetcher   web2adoc.Fetcher
	Preparer  web2adoc.Preparer
	Converter web2adoc.Converter
	Restorer  *web2adoc.Restorer

	// Extractor, if set, narrows each prepared page to its main content.
	Extractor web2adoc.Extractor

	// RateLimiter, if set, is waited on before every fetch attempt.
	RateLimiter web2adoc.DomainLimiter

	// RetryDelays are the waits between fetch attempts. Nil means a single
	// attempt.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Result holds the outcome of an assembly run.
type Result struct {
	Converted  int
	Duplicates int
	Failed     int
}

// ProgressEvent reports progress during assembly.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressProcessing
	ProgressCompleted
	ProgressDuplicate
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting assembly progress.
type ProgressFunc func(event ProgressEvent)

// Assemble builds a document titled title from urls. Repeated URLs are
// processed once, at their first position. Pages whose converted content is
// identical to an earlier page are dropped.
//
// The returned error is non-nil only when ctx is done; the document and
// result then cover the pages finished before cancellation.
func (a *Assembler) Assemble(ctx context.Context, title string, urls []string, progress ProgressFunc) (*web2adoc.Document, *Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	urls = web2adoc.DedupeURLs(urls)
	doc := web2adoc.NewDocument(title)
	result := &Result{}
	total := len(urls)

	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return doc, result, err
		}

		progress(ProgressEvent{Type: ProgressProcessing, Completed: i, Total: total, URL: u})

		section, err := a.Section(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return doc, result, ctx.Err()
			}
			result.Failed++
			a.logger().Error("skipping page", "url", u, "err", err)
			progress(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, URL: u, Error: err})
			continue
		}

		if !doc.Append(section) {
			result.Duplicates++
			a.logger().Info("duplicate content", "url", u, "hash", section.Hash)
			progress(ProgressEvent{Type: ProgressDuplicate, Completed: i + 1, Total: total, URL: u})
			continue
		}

		result.Converted++
		progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, URL: u})
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return doc, result, nil
}

// Section converts the page at rawURL into an AsciiDoc section.
func (a *Assembler) Section(ctx context.Context, rawURL string) (*web2adoc.Section, error) {
	html, err := a.fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	prepared, err := a.Preparer.Prepare(html)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}

	if a.Extractor != nil {
		prepared = a.extract(rawURL, prepared)
	}

	text, err := a.Converter.Convert(prepared)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	text = a.Restorer.Restore(text)
	text = web2adoc.DropLastLine(text)
	text = web2adoc.AdjustHeadings(text)

	section := &web2adoc.Section{URL: rawURL, Content: text}
	if text != "" {
		section.Hash = computeHash(text)
	}
	return section, nil
}

// extract returns the main content of prepared, or prepared itself when the
// extractor finds nothing usable.
func (a *Assembler) extract(rawURL, prepared string) string {
	res, err := a.Extractor.Extract(prepared)
	if err != nil {
		a.logger().Debug("extraction failed, keeping whole page", "url", rawURL, "err", err)
		return prepared
	}
	if strings.TrimSpace(res.ContentHTML) == "" {
		a.logger().Debug("extraction empty, keeping whole page", "url", rawURL)
		return prepared
	}
	return res.ContentHTML
}

func (a *Assembler) fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", web2adoc.Errorf(web2adoc.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	fetchFn := func(ctx context.Context, target string) (string, error) {
		if a.RateLimiter != nil {
			if err := a.RateLimiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
		return a.Fetcher.Fetch(ctx, target)
	}

	return FetchWithRetry(ctx, rawURL, fetchFn, a.Logger, a.RetryDelays)
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

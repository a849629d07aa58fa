// Package rod fetches pages through a headless Chrome so that math rendered
// client-side (KaTeX, MathJax) is present in the returned HTML.
package rod

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/web2adoc"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements web2adoc.Fetcher at compile time.
var _ web2adoc.Fetcher = (*Fetcher)(nil)

// DefaultRenderDelay is how long Fetch waits after the load event for
// client-side math rendering to settle.
const DefaultRenderDelay = 500 * time.Millisecond

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser     *rod.Browser
	launcher    *launcher.Launcher
	timeout     time.Duration
	renderDelay time.Duration

	mu     sync.Mutex
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each Fetch call. Zero means no bound beyond ctx.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRenderDelay sets the settle time after the load event.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{renderDelay: DefaultRenderDelay}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return "", web2adoc.Errorf(web2adoc.EINVALID, "fetcher is closed")
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	var status int
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	waitResponse()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkStatus(status, url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	return page.HTML()
}

// checkStatus applies the same rule as the HTTP fetcher: anything outside
// 2xx is a failure, and 404 is reported as ENOTFOUND.
func checkStatus(status int, url string) error {
	if status >= 200 && status <= 299 {
		return nil
	}
	if status == http.StatusNotFound {
		return web2adoc.Errorf(web2adoc.ENOTFOUND, "HTTP %d for %s", status, url)
	}
	return fmt.Errorf("HTTP %d for %s", status, url)
}

// Close releases browser resources and kills the launched process.
// Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	err := f.browser.Close()
	f.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/web2adoc"
	"github.com/fwojciec/web2adoc/assemble"
	"github.com/fwojciec/web2adoc/fs"
	"github.com/fwojciec/web2adoc/goquery"
	"github.com/fwojciec/web2adoc/htmltomarkdown"
	webhttp "github.com/fwojciec/web2adoc/http"
	"github.com/fwojciec/web2adoc/readability"
	"github.com/fwojciec/web2adoc/rod"
	webslog "github.com/fwojciec/web2adoc/slog"
	"github.com/fwojciec/web2adoc/trafilatura"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin feeds the interactive prompt. Set before calling Run().
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments. Leaving the prompt, by
// command, end of input or interrupt, is not an error.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("web2adoc"),
		kong.Description("Download web pages and convert them, math included, into one AsciiDoc document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	urls := cli.URLs
	for _, u := range urls {
		if !IsURL(u) {
			return web2adoc.Errorf(web2adoc.EINVALID, "not an http(s) URL: %q", u)
		}
	}
	if len(urls) == 0 {
		var ok bool
		urls, ok, err = NewPrompt(m.Stdin, stdout).Collect(ctx)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if !ok {
			return nil
		}
	}

	logger := NewLogger(stderr, cli.Verbose)

	writer := fs.NewWriter(cli.Dir)
	name, err := writer.NextName()
	if err != nil {
		return fmt.Errorf("choosing output name: %w", err)
	}

	fetcher, err := cli.newFetcher()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer fetcher.Close()

	a := &assemble.Assembler{
		Fetcher:     webslog.NewLoggingFetcher(fetcher, logger),
		Preparer:    goquery.NewPreparer(),
		Extractor:   cli.newExtractor(),
		Converter:   webslog.NewLoggingConverter(htmltomarkdown.NewConverter(), logger),
		Restorer:    web2adoc.NewRestorer(),
		RateLimiter: assemble.NewDomainLimiter(cli.Rate),
		RetryDelays: assemble.RetryDelays(cli.Retries),
		Logger:      logger,
	}

	title := strings.TrimSuffix(name, fs.Extension)
	doc, result, err := a.Assemble(ctx, title, urls, progressPrinter(stdout))
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn("interrupted, writing pages converted so far", "converted", result.Converted)
	}

	if _, err := writer.WriteDocument(context.WithoutCancel(ctx), name, doc); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	fmt.Fprintf(stdout, "\nSuccessfully created %s (%d converted, %d failed, %d duplicate)\n",
		name, result.Converted, result.Failed, result.Duplicates)
	return nil
}

func (c *CLI) newFetcher() (web2adoc.Fetcher, error) {
	if c.Browser {
		return rod.NewFetcher(rod.WithTimeout(c.Timeout))
	}
	return webhttp.NewFetcher(webhttp.WithTimeout(c.Timeout)), nil
}

func (c *CLI) newExtractor() web2adoc.Extractor {
	switch c.Extractor {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	default:
		return nil
	}
}

func progressPrinter(w io.Writer) assemble.ProgressFunc {
	return func(e assemble.ProgressEvent) {
		switch e.Type {
		case assemble.ProgressProcessing:
			fmt.Fprintf(w, "Downloading and converting: %s\n", e.URL)
		case assemble.ProgressFailed:
			fmt.Fprintf(w, "Error processing %s: %v\n", e.URL, e.Error)
		case assemble.ProgressDuplicate:
			fmt.Fprintf(w, "Skipping %s: same content as an earlier page\n", e.URL)
		}
	}
}

// NewLogger returns a tint logger writing to w. Colour is enabled only when
// w is a terminal.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		NoColor:    !isTerminal(w),
		TimeFormat: time.Kitchen,
		Level:      level,
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

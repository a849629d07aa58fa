package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompt texts.
const (
	PromptWelcome = "This is the Web2AsciiDoc Downloader. Provide a URL, or type 'X' to exit this utility: "
	PromptURL     = "Provide a URL, or type 'X' to exit this utility: "
	PromptAnother = "Provide another URL, type 'P' to process the results, or type 'X' to exit this utility: "
	PromptInvalid = "INVALID INPUT!! Provide a URL, or type 'X' to exit this utility: "
)

// IsURL reports whether s starts with an http or https scheme.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Prompt collects URLs line by line until the user asks to process them.
type Prompt struct {
	in  io.Reader
	out io.Writer
}

// NewPrompt returns a Prompt reading from in and writing prompts to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

// Collect runs the prompt loop. It returns the URLs entered, in order, once
// the user types P. ok is false when the user types X, input ends, or ctx is
// canceled; none of those is an error.
func (p *Prompt) Collect(ctx context.Context) (urls []string, ok bool, err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, errc := readLines(ctx, p.in)

	prompt := PromptWelcome
	for {
		fmt.Fprint(p.out, prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return nil, false, nil
		case l, open := <-lines:
			if !open {
				fmt.Fprintln(p.out)
				if err := <-errc; err != nil && ctx.Err() == nil {
					return nil, false, err
				}
				return nil, false, nil
			}
			line = strings.TrimSpace(l)
		}

		switch {
		case strings.EqualFold(line, "X"):
			return nil, false, nil
		case strings.EqualFold(line, "P"):
			if len(urls) == 0 {
				fmt.Fprintln(p.out, "No URLs to process.")
				prompt = PromptURL
				continue
			}
			return urls, true, nil
		case IsURL(line):
			urls = append(urls, line)
			prompt = PromptAnother
		default:
			prompt = PromptInvalid
		}
	}
}

// readLines scans r in a goroutine so the caller can stop waiting on ctx.
// errc receives exactly one value, possibly nil, before lines is closed.
// After ctx is done the goroutine may stay blocked in Scan until stdin
// closes; the process exits right after, so it is left to leak.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs      []string      `arg:"" optional:"" name:"url" help:"Page URLs to convert. Without any, URLs are read interactively."`
	Dir       string        `short:"d" default:"." help:"Directory for the doc_NNN.ad output file"`
	Timeout   time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Retries   int           `short:"r" default:"0" help:"Retries per page after a failed fetch"`
	Rate      float64       `default:"0" help:"Requests per second per domain (0 for unlimited)"`
	Browser   bool          `short:"b" help:"Render pages in headless Chrome before converting"`
	Extractor string        `short:"e" default:"none" enum:"none,readability,trafilatura" help:"Main-content extractor"`
	Verbose   bool          `short:"v" help:"Enable debug logging"`
}

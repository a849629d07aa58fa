package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/web2adoc"
)

// Ensure LoggingConverter implements web2adoc.Converter.
var _ web2adoc.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging.
type LoggingConverter struct {
	next   web2adoc.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next web2adoc.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs input and output sizes.
func (c *LoggingConverter) Convert(html string) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("convert",
			"in", len(html),
			"out", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}

package core

// report.go renders quality warnings. Checks produce []Warning; reporters
// decide where the lines go.

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Reporter receives the warnings produced for one selection.
type Reporter interface {
	Report(ctx context.Context, warnings []Warning) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, warnings []Warning) error

// Report implements Reporter.
func (f ReporterFunc) Report(ctx context.Context, warnings []Warning) error {
	return f(ctx, warnings)
}

// DefaultReporter writes plain text lines to stdout.
func DefaultReporter() Reporter {
	return &TextReporter{W: os.Stdout}
}

// TextReporter writes one line per warning to W.
type TextReporter struct {
	W io.Writer
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, warnings []Warning) error {
	for _, w := range warnings {
		if _, err := fmt.Fprintln(r.W, w.Message()); err != nil {
			return fmt.Errorf("write warning: %w", err)
		}
	}
	return nil
}

// Collector keeps reported warnings in memory. Safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
}

// Report implements Reporter.
func (c *Collector) Report(_ context.Context, warnings []Warning) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, warnings...)
	return nil
}

// Warnings returns a copy of everything collected so far.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Messages returns the rendered lines of everything collected so far.
func (c *Collector) Messages() []string {
	ws := c.Warnings()
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Message()
	}
	return out
}

// LogReporter logs each warning as a structured record.
type LogReporter struct {
	Logger *slog.Logger
	Level  slog.Level
}

// Report implements Reporter.
func (r *LogReporter) Report(ctx context.Context, warnings []Warning) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, w := range warnings {
		logger.Log(ctx, r.Level, "data quality warning",
			"column", w.Column,
			"kind", w.Kind.String(),
		)
	}
	return nil
}

// MultiReporter fans warnings out to several reporters in order and stops at
// the first error.
func MultiReporter(reporters ...Reporter) Reporter {
	return ReporterFunc(func(ctx context.Context, warnings []Warning) error {
		for _, r := range reporters {
			if r == nil {
				continue
			}
			if err := r.Report(ctx, warnings); err != nil {
				return err
			}
		}
		return nil
	})
}

// Package cli implements the stackchart command-line interface.
//
// The commands load tabular data, build charts through the recipe
// registry and export them, print their view trees, explore them in a
// terminal UI and serve the HTTP API. The CLI is built using cobra and
// logs through charmbracelet/log.
//
// # Commands
//
//   - render: Export a chart as SVG, PNG, PDF, JSON or DOT
//   - inspect: Print the view tree of a chart
//   - explore: Move a pointer over a chart and read its tooltips
//   - serve: Run the HTTP API
//   - recipes: List chart recipes and themes
//   - cache: Manage the local cache
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/stackchart/config.toml; flags
// override them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with short
// "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// timed starts a clock for one CLI step. The returned func logs msg at
// info level with keyvals and a "took" field:
//
//	INFO built chart recipe=column rows=42 took=12ms
func timed(l *log.Logger) func(msg string, keyvals ...any) {
	start := time.Now()
	return func(msg string, keyvals ...any) {
		keyvals = append(keyvals, "took", time.Since(start).Round(time.Millisecond))
		l.Info(msg, keyvals...)
	}
}

type loggerKey struct{}

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger set by withLogger, or log.Default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

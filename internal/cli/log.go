// Package cli implements the viewstack command-line interface.
//
// The commands load a view document (JSON or TOML), optionally narrow it
// with dimension constraints and present the result:
//   - show: print the tree
//   - select: write the selected tree to a document
//   - dims: tabulate the dimensions reachable in the tree
//   - render: draw a node-link diagram (DOT, SVG, PDF or PNG)
//   - browse: navigate the tree interactively
//   - cache: inspect or clear the result cache
//   - completion: print shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and handed to the query runner.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps are "HH:MM:SS.ms"; at debug
// level records also name their caller.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    level <= log.DebugLevel,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step and reports it as a structured record.
type progress struct {
	logger *log.Logger
	start  time.Time
	fields []any
}

func newProgress(l *log.Logger, keyvals ...any) *progress {
	return &progress{logger: l, start: time.Now(), fields: keyvals}
}

// done logs msg with the progress fields, the extra keyvals and the elapsed
// time, e.g. `Rendered format=svg cached=false elapsed=4ms`.
func (p *progress) done(msg string, keyvals ...any) {
	fields := make([]any, 0, len(p.fields)+len(keyvals)+2)
	fields = append(fields, p.fields...)
	fields = append(fields, keyvals...)
	fields = append(fields, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, fields...)
}

type ctxKey struct{}

// withLogger attaches l to ctx; a nil ctx starts from context.Background.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default()
// when ctx is nil or carries none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && l != nil {
		return l
	}
	return log.Default()
}

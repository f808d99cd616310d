// Package logging provides structured logging configuration using log/slog.
//
// The text format is a colored console handler for interactive runs; the
// json format is meant for pipelines that ship logs elsewhere. Both redact
// struct fields tagged `masq:"secret"`.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

// ErrInvalidOption is returned for an unknown level, format, or output.
var ErrInvalidOption = errors.New("invalid logging option")

var (
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	output        io.Closer // log file opened by Setup, if any
)

// Default returns the process-wide logger.
func Default() *slog.Logger {
	return defaultLogger
}

// Setup configures the default logger from level, format, and output.
//
// Level values: "debug", "info", "warn", "error"
// Format values: "text", "json"
// Output values: "stderr" (default), "stdout", or a file path
//
// The configured logger also becomes the slog default. A log file opened
// by a previous Setup is closed.
func Setup(level, format, out string) error {
	w, err := openOutput(out)
	if err != nil {
		return err
	}

	logger, err := New(level, format, w)
	if err != nil {
		if c, ok := w.(io.Closer); ok && w != os.Stdout && w != os.Stderr {
			c.Close()
		}
		return err
	}

	if err := Close(); err != nil {
		return err
	}
	if f, ok := w.(*os.File); ok && f != os.Stdout && f != os.Stderr {
		output = f
	}

	defaultLogger = logger
	slog.SetDefault(logger)
	return nil
}

// Close closes the log file opened by Setup, if any, and sends further
// records of the default logger to stderr.
func Close() error {
	if output == nil {
		return nil
	}
	err := output.Close()
	output = nil

	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(defaultLogger)
	if err != nil {
		return goerr.Wrap(err, "failed to close log file")
	}
	return nil
}

// New builds a logger writing to w without touching the default.
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	filter := masq.New(masq.WithTag("secret"))

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text", "":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(lvl),
			clog.WithColorMap(&clog.ColorMap{
				Level: map[slog.Level]*color.Color{
					slog.LevelDebug: color.New(color.FgGreen, color.Bold),
					slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
					slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
					slog.LevelError: color.New(color.FgRed, color.Bold),
				},
				LevelDefault: color.New(color.FgBlue, color.Bold),
				Time:         color.New(color.FgWhite),
				Message:      color.New(color.FgHiWhite),
				AttrKey:      color.New(color.FgHiCyan),
				AttrValue:    color.New(color.FgHiWhite),
			}),
			clog.WithAttrHook(hooks.GoErr()),
			clog.WithReplaceAttr(filter),
		)

	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       lvl,
			ReplaceAttr: filter,
		})

	default:
		return nil, goerr.Wrap(ErrInvalidOption, "invalid log format, should be 'json' or 'text'", goerr.V("value", format))
	}

	return slog.New(handler), nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, goerr.Wrap(ErrInvalidOption, "invalid log level", goerr.V("value", level))
	}
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "stderr", "":
		return os.Stderr, nil
	case "stdout", "-":
		return os.Stdout, nil
	default:
		fd, err := os.Create(filepath.Clean(output))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", output))
		}
		return fd, nil
	}
}

type ctxLoggerKey struct{}

// With returns a new context carrying logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger carried by ctx, or the default logger.
//
// Usage:
//
//	logger := logging.From(ctx)
//	logger.Info("wrote table", "table", key, "rows", n)
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

// WithFields returns a context whose logger carries additional fields.
func WithFields(ctx context.Context, args ...any) context.Context {
	return With(ctx, From(ctx).With(args...))
}

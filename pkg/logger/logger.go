// Package logger provides a colored slog handler for CLI output.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ANSI color codes used by the handler.
const (
	Reset     = "\033[0m"
	Red       = "\033[31m"
	Green     = "\033[32m"
	Yellow    = "\033[33m"
	Magenta   = "\033[35m"
	Cyan      = "\033[36m"
	White     = "\033[37m"
	BoldWhite = "\033[1;37m"
)

//nolint:gochecknoglobals // static level palette
var levelColors = map[slog.Level]string{
	slog.LevelDebug: Cyan,
	slog.LevelInfo:  Green,
	slog.LevelWarn:  Yellow,
	slog.LevelError: Red,
}

// ColoredHandler is a slog.Handler that writes human-readable colored lines.
type ColoredHandler struct {
	h   slog.Handler
	out io.Writer
}

// NewColoredHandler creates a ColoredHandler writing to w.
func NewColoredHandler(w io.Writer, opts *slog.HandlerOptions) (handler *ColoredHandler) {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	handler = &ColoredHandler{
		h:   slog.NewTextHandler(w, opts),
		out: w,
	}
	return handler
}

// Enabled implements slog.Handler.
func (h *ColoredHandler) Enabled(ctx context.Context, level slog.Level) (enabled bool) {
	enabled = h.h.Enabled(ctx, level)
	return enabled
}

// Handle implements slog.Handler.
func (h *ColoredHandler) Handle(_ context.Context, r slog.Record) (err error) {
	timeStr := r.Time.Format("15:04:05.000")

	levelColor, ok := levelColors[r.Level]
	if !ok {
		levelColor = White
	}
	levelStr := fmt.Sprintf("%-6s", strings.ToUpper(r.Level.String()))

	var line strings.Builder
	line.WriteString(fmt.Sprintf("%s%s%s ", Magenta, timeStr, Reset))
	line.WriteString(fmt.Sprintf("%s%s%s ", levelColor, levelStr, Reset))
	line.WriteString(fmt.Sprintf("%s%s%s ", BoldWhite, r.Message, Reset))

	r.Attrs(func(a slog.Attr) bool {
		val := a.Value.String()
		if a.Value.Kind() == slog.KindString {
			val = fmt.Sprintf("%q", val)
		}
		line.WriteString(fmt.Sprintf("%s%s%s=%s ", Yellow, a.Key, Reset, val))
		return true
	})

	_, err = fmt.Fprintln(h.out, line.String())
	return err
}

// WithAttrs implements slog.Handler.
func (h *ColoredHandler) WithAttrs(attrs []slog.Attr) (handler slog.Handler) {
	handler = &ColoredHandler{h: h.h.WithAttrs(attrs), out: h.out}
	return handler
}

// WithGroup implements slog.Handler.
func (h *ColoredHandler) WithGroup(name string) (handler slog.Handler) {
	handler = &ColoredHandler{h: h.h.WithGroup(name), out: h.out}
	return handler
}

// Setup installs a ColoredHandler as the default slog logger. Debug-level
// records are emitted only when verbose is set.
func Setup(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := NewColoredHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

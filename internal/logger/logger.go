package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger wraps slog with package/function scoping so call sites read as
// logger.New("reportRepository").Function("GetByID").
type Logger struct {
	handler  *slog.Logger
	pkg      string
	file     string
	function string
}

func New(pkg string) Logger {
	return Logger{
		handler: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})),
		pkg: pkg,
	}
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) scopeAttrs(args []any) []any {
	attrs := []any{"pkg", l.pkg}
	if l.file != "" {
		attrs = append(attrs, "file", l.file)
	}
	if l.function != "" {
		attrs = append(attrs, "function", l.function)
	}
	return append(attrs, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.handler.Info(msg, l.scopeAttrs(args)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.handler.Warn(msg, l.scopeAttrs(args)...)
}

// Er logs an error without returning one, for paths that continue.
func (l Logger) Er(msg string, err error, args ...any) {
	l.handler.Error(msg, l.scopeAttrs(append([]any{"error", err}, args...))...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.handler.Error(msg, l.scopeAttrs(args)...)
}

// Err logs and returns a wrapped error so callers can `return log.Err(...)`.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from msg alone.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return fmt.Errorf("%s", msg)
}

func (l Logger) ErrMsg(msg string) error {
	return l.Error(msg)
}

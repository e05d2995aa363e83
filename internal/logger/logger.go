package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	level = new(slog.LevelVar)
	base  atomic.Pointer[slog.Logger]
)

func init() {
	base.Store(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

// SetLevel changes the level for every Logger, including ones already created.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetHandler swaps the output handler. Intended for main and tests.
func SetHandler(h slog.Handler) {
	base.Store(slog.New(h))
}

type Logger struct {
	pkg      string
	file     string
	function string
}

func New(pkg string) Logger {
	return Logger{pkg: pkg}
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

func (l Logger) with() *slog.Logger {
	log := base.Load().With("package", l.pkg)
	if l.file != "" {
		log = log.With("file", l.file)
	}
	if l.function != "" {
		log = log.With("function", l.function)
	}
	return log
}

func (l Logger) Debug(msg string, args ...any) {
	l.with().Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.with().Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.with().Warn(msg, args...)
}

// Er logs err without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.with().Error(msg, append(args, "error", err)...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.with().Error(msg, args...)
}

// Err logs err and returns it wrapped with msg, so errors.Is still matches the cause.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs msg and returns it as a new error.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return errors.New(msg)
}

func (l Logger) ErrMsg(msg string) error {
	return l.Error(msg)
}

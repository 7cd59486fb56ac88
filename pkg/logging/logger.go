// Copyright 2025 Certen Protocol
//
// Package logging provides structured logging for the commit verifier CLI
// and library callers, adapted from the lite client's logging package and
// trimmed to what a one-shot verifier process needs (no HTTP middleware).
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	verifyerrors "github.com/certen/lightcommit/pkg/errors"
)

// Logger wraps slog.Logger with verifier-domain convenience methods.
type Logger struct {
	*slog.Logger
	config *Config
}

// Config controls logger construction.
type Config struct {
	Level     slog.Level
	Format    string // "json" or "text"
	Output    string // "stdout", "stderr", or a file path
	AddSource bool
}

// Field is a single structured log attribute.
type Field struct {
	Key   string
	Value any
}

// DefaultConfig returns the default logging configuration: info level, text
// format, stdout.
func DefaultConfig() *Config {
	return &Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: "stdout",
	}
}

// New creates a Logger from Config, opening a log file if Output names one.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var output *os.File
	switch cfg.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		output = f
	}

	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{Logger: slog.New(handler), config: cfg}, nil
}

// ParseLevel parses a log level name ("debug"|"info"|"warn"|"error").
func ParseLevel(level string) (slog.Level, error) {
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
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func (l *Logger) with(fields ...Field) *Logger {
	if len(fields) == 0 {
		return l
	}
	args := make([]any, len(fields)*2)
	for i, f := range fields {
		args[i*2] = f.Key
		args[i*2+1] = f.Value
	}
	return &Logger{Logger: l.Logger.With(args...), config: l.config}
}

// WithRequestID tags the logger with a per-invocation correlation ID.
func (l *Logger) WithRequestID(id string) *Logger {
	return l.with(Field{Key: "request_id", Value: id})
}

// WithHeight tags the logger with the commit height under verification.
func (l *Logger) WithHeight(height string) *Logger {
	return l.with(Field{Key: "height", Value: height})
}

// WithError tags the logger with error details, unpacking a VerifyError's
// code and field when present.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	args := []any{"error", err.Error()}
	if ve, ok := verifyerrors.As(err); ok {
		args = append(args, "error_code", string(ve.Code))
		if ve.Field != "" {
			args = append(args, "error_field", ve.Field)
		}
	}
	return &Logger{Logger: l.Logger.With(args...), config: l.config}
}

// LogVerification logs the outcome of a single commit verification run.
func (l *Logger) LogVerification(ok, quorum bool, signedPower, totalPower string, duration time.Duration) {
	level := slog.LevelInfo
	if !ok {
		level = slog.LevelWarn
	}
	l.Logger.LogAttrs(context.Background(), level, "commit verification complete",
		slog.Bool("ok", ok),
		slog.Bool("quorum", quorum),
		slog.String("signed_power", signedPower),
		slog.String("total_power", totalPower),
		slog.Int64("duration_ms", duration.Milliseconds()),
	)
}

var global *Logger

// SetGlobal installs the process-wide default logger.
func SetGlobal(l *Logger) { global = l }

// Global returns the process-wide default logger, creating one if unset.
func Global() *Logger {
	if global == nil {
		l, _ := New(DefaultConfig())
		global = l
	}
	return global
}

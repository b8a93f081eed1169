// Package log provides a zerolog-backed implementation of the Logger interface.
//
// This file contains the default production logger provider. Warnings emitted
// through pkg/errors are routed into the same zerolog stream so that recoverable
// conditions (for example EmptyResultWarning) appear as structured log events.

package log

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	logger zerolog.Logger
}

// ZerologProvider implements LoggerProvider on top of rs/zerolog.
type ZerologProvider struct {
	root  zerolog.Logger
	level Level
}

// NewZerologProvider creates a LoggerProvider backed by zerolog writing to stderr.
//
// Example:
//
//	provider := log.NewZerologProvider(log.ToLogLevel("info"))
//	logger := provider.GetLoggerWithName("Scaler")
func NewZerologProvider(level Level) *ZerologProvider {
	return NewZerologProviderWithWriter(level, os.Stderr)
}

// NewZerologProviderWithWriter creates a LoggerProvider backed by zerolog
// writing to the given writer. Useful for capturing output in tests.
func NewZerologProviderWithWriter(level Level, w io.Writer) *ZerologProvider {
	root := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologProvider{root: root, level: level}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	return &zerologLogger{logger: p.root}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{logger: p.root.With().Str(ComponentKey, name).Logger()}
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *ZerologProvider) SetLevel(level Level) {
	p.level = level
	p.root = p.root.Level(toZerologLevel(level))
}

// WarnFunc returns a function suitable for errors.SetZerologWarnFunc, routing
// package-level warnings into this provider's zerolog stream.
func (p *ZerologProvider) WarnFunc() func(warning error) {
	logger := p.root
	return func(warning error) {
		ev := logger.Warn()
		if marshaler, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(marshaler)
		}
		ev.Msg(warning.Error())
	}
}

func (z *zerologLogger) Debug(msg string, fields ...any) {
	z.emit(z.logger.Debug(), msg, fields...)
}

func (z *zerologLogger) Info(msg string, fields ...any) {
	z.emit(z.logger.Info(), msg, fields...)
}

func (z *zerologLogger) Warn(msg string, fields ...any) {
	z.emit(z.logger.Warn(), msg, fields...)
}

func (z *zerologLogger) Error(msg string, fields ...any) {
	z.emit(z.logger.Error(), msg, fields...)
}

func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.logger.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, isErr := fields[i+1].(error); isErr {
			ctx = ctx.AnErr(key, err)
		} else {
			ctx = ctx.Interface(key, fields[i+1])
		}
	}
	return &zerologLogger{logger: ctx.Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= z.logger.GetLevel()
}

func (z *zerologLogger) emit(ev *zerolog.Event, msg string, fields ...any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, isErr := fields[i+1].(error); isErr {
			ev = ev.AnErr(key, err)
		} else {
			ev = ev.Interface(key, fields[i+1])
		}
	}
	ev.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

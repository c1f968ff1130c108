package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field represents a structured logging key/value pair.
type Field struct {
	// Key is the field name.
	Key string
	// Value is the field value.
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates an error field under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used throughout the application.
// It decouples components from the concrete logging backend.
type Logger interface {
	// Debug logs a message at debug level with optional structured fields.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level with optional structured fields.
	Info(msg string, fields ...Field)
	// Warn logs a message at warn level with optional structured fields.
	Warn(msg string, fields ...Field)
	// Error logs a message at error level with the given error and fields.
	Error(msg string, err error, fields ...Field)
	// Printf logs a formatted message at info level (log.Printf compatibility).
	Printf(format string, v ...any)
	// Println logs its arguments at info level (log.Println compatibility).
	Println(v ...any)
}

// ZerologAdapter implements Logger on top of rs/zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// Verify interface compliance.
var _ Logger = (*ZerologAdapter)(nil)

// NewZerologAdapter wraps an existing zerolog.Logger in the Logger interface.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a Logger writing JSON lines to out, tagged with the given
// component name.
func NewLogger(out io.Writer, component string) Logger {
	zl := zerolog.New(out).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// NewDefaultLogger creates a Logger writing to stderr with the application
// component tag.
func NewDefaultLogger() Logger {
	return NewLogger(os.Stderr, "countbench")
}

// Debug logs a message at debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Info logs a message at info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

// Warn logs a message at warn level.
func (a *ZerologAdapter) Warn(msg string, fields ...Field) {
	applyFields(a.logger.Warn(), fields).Msg(msg)
}

// Error logs a message at error level, attaching err under the "error" key.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (a *ZerologAdapter) Printf(format string, v ...any) {
	a.logger.Info().Msgf(format, v...)
}

// Println logs its arguments at info level.
func (a *ZerologAdapter) Println(v ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// applyFields adds structured fields to a zerolog event, dispatching on the
// dynamic type of each value.
func applyFields(ev *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ev = ev.Str(f.Key, v)
		case int:
			ev = ev.Int(f.Key, v)
		case int64:
			ev = ev.Int64(f.Key, v)
		case uint64:
			ev = ev.Uint64(f.Key, v)
		case float64:
			ev = ev.Float64(f.Key, v)
		case error:
			ev = ev.AnErr(f.Key, v)
		case nil:
			ev = ev.Interface(f.Key, nil)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	return ev
}

// NopLogger is a Logger that discards everything. Useful for tests and for
// quiet mode.
type NopLogger struct{}

// Verify interface compliance.
var _ Logger = NopLogger{}

// Debug discards the message.
func (NopLogger) Debug(string, ...Field) {}

// Info discards the message.
func (NopLogger) Info(string, ...Field) {}

// Warn discards the message.
func (NopLogger) Warn(string, ...Field) {}

// Error discards the message.
func (NopLogger) Error(string, error, ...Field) {}

// Printf discards the message.
func (NopLogger) Printf(string, ...any) {}

// Println discards the message.
func (NopLogger) Println(...any) {}

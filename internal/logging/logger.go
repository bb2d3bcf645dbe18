package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field represents a structured logging field as a key/value pair.
// Fields are attached to log events to carry machine-readable context
// alongside the human-readable message.
type Field struct {
	Key   string
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

// Bool creates a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Err creates an error field with the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the unified logging interface consumed by all components.
// It decouples callers from the underlying logging backend so that tests
// can capture output and alternative backends can be swapped in.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level.
	Info(msg string, fields ...Field)
	// Warn logs a message at warn level.
	Warn(msg string, fields ...Field)
	// Error logs a message at error level with an optional underlying cause.
	Error(msg string, err error, fields ...Field)
	// Printf logs a formatted message at info level (log.Printf compatibility).
	Printf(format string, v ...any)
	// Println logs its arguments at info level (log.Println compatibility).
	Println(v ...any)
}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a ZerologAdapter writing JSON events to w, tagged with
// the given component name.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// NewDefaultLogger creates the standard process logger writing to stderr.
func NewDefaultLogger() *ZerologAdapter {
	return NewLogger(os.Stderr, "heapwatch")
}

// applyFields attaches structured fields to a zerolog event, dispatching on
// the dynamic type of each value.
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
		case bool:
			ev = ev.Bool(f.Key, v)
		case error:
			ev = ev.AnErr(f.Key, v)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	return ev
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

// Error logs a message at error level. A nil err is permitted and simply
// omits the cause field.
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

// StdLoggerAdapter adapts the standard library log.Logger to the Logger
// interface. It renders fields as trailing key=value pairs.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps an existing standard library logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

// Debug logs a message at debug level.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Info logs a message at info level.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Warn logs a message at warn level.
func (a *StdLoggerAdapter) Warn(msg string, fields ...Field) {
	a.logger.Printf("[WARN] %s%s", msg, formatFields(fields))
}

// Error logs a message at error level with an optional cause.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	a.logger.Printf("[ERROR] %s%s", msg, formatFields(fields))
}

// Printf logs a formatted message at info level.
func (a *StdLoggerAdapter) Printf(format string, v ...any) {
	a.logger.Printf(format, v...)
}

// Println logs its arguments at info level.
func (a *StdLoggerAdapter) Println(v ...any) {
	a.logger.Println(v...)
}

package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	t.Run("String creates field with key and string value", func(t *testing.T) {
		f := String("path", "heap-1700000000000.heapsnapshot")
		if f.Key != "path" {
			t.Errorf("String().Key = %q, want %q", f.Key, "path")
		}
		if f.Value != "heap-1700000000000.heapsnapshot" {
			t.Errorf("String().Value = %q, want %q", f.Value, "heap-1700000000000.heapsnapshot")
		}
	})

	t.Run("Int creates field with key and int value", func(t *testing.T) {
		f := Int("count", 42)
		if f.Key != "count" || f.Value != 42 {
			t.Errorf("Int() = %+v, want {count 42}", f)
		}
	})

	t.Run("Uint64 creates field with key and uint64 value", func(t *testing.T) {
		f := Uint64("heap_bytes", 104857600)
		if f.Key != "heap_bytes" || f.Value != uint64(104857600) {
			t.Errorf("Uint64() = %+v, want {heap_bytes 104857600}", f)
		}
	})

	t.Run("Float64 creates field with key and float64 value", func(t *testing.T) {
		f := Float64("heap_used_mb", 100.0)
		if f.Key != "heap_used_mb" || f.Value != 100.0 {
			t.Errorf("Float64() = %+v, want {heap_used_mb 100}", f)
		}
	})

	t.Run("Err creates field with error key", func(t *testing.T) {
		testErr := errors.New("test error")
		f := Err(testErr)
		if f.Key != "error" {
			t.Errorf("Err().Key = %q, want %q", f.Key, "error")
		}
		if f.Value != testErr {
			t.Errorf("Err().Value = %v, want %v", f.Value, testErr)
		}
	})
}

// TestNewZerologAdapter tests the ZerologAdapter constructor.
func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	adapter := NewZerologAdapter(zl)

	if adapter == nil {
		t.Fatal("NewZerologAdapter returned nil")
	}

	adapter.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("NewZerologAdapter logger not working, output: %s", buf.String())
	}
}

// TestNewDefaultLogger tests the default logger constructor.
func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestNewLogger tests the custom logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "sampler")

	logger.Info("hello")
	output := buf.String()

	if !strings.Contains(output, "sampler") {
		t.Errorf("NewLogger should include component field, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("NewLogger should include message, got: %s", output)
	}
}

// TestZerologAdapter_Info tests the Info method.
func TestZerologAdapter_Info(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		fields   []Field
		contains []string
	}{
		{
			name:     "no fields",
			msg:      "Current heap used: 100.0 MB",
			fields:   nil,
			contains: []string{"Current heap used: 100.0 MB", "info"},
		},
		{
			name:     "with string field",
			msg:      "snapshot written",
			fields:   []Field{String("path", "heap-1.heapsnapshot")},
			contains: []string{"snapshot written", "heap-1.heapsnapshot"},
		},
		{
			name:     "with multiple fields",
			msg:      "usage report",
			fields:   []Field{Float64("heap_used_mb", 100.5), Uint64("heap_objects", 2048)},
			contains: []string{"usage report", "100.5", "2048"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info(tt.msg, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Warn tests the Warn method.
func TestZerologAdapter_Warn(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Warn("sampler active", String("hint", "send SIGUSR2"))

	output := buf.String()
	if !strings.Contains(output, "warn") {
		t.Errorf("Warn output should contain level, got: %s", output)
	}
	if !strings.Contains(output, "sampler active") || !strings.Contains(output, "SIGUSR2") {
		t.Errorf("Warn output should contain message and fields, got: %s", output)
	}
}

// TestZerologAdapter_Error tests the Error method.
func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		err      error
		fields   []Field
		contains []string
	}{
		{
			name:     "with error",
			msg:      "Snapshot failed",
			err:      errors.New("no space left on device"),
			fields:   nil,
			contains: []string{"Snapshot failed", "no space left on device", "error"},
		},
		{
			name:     "with nil error",
			msg:      "Snapshot skipped: heap 300.0 MB > safe 250.0 MB",
			err:      nil,
			fields:   nil,
			contains: []string{"Snapshot skipped", "error"},
		},
		{
			name:     "with error and fields",
			msg:      "write error",
			err:      errors.New("timeout"),
			fields:   []Field{String("path", "heap-2.heapsnapshot"), Int("attempt", 1)},
			contains: []string{"write error", "timeout", "heap-2.heapsnapshot", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Error(tt.msg, tt.err, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Debug tests the Debug method.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
	logger := NewZerologAdapter(zl)

	logger.Debug("debug message", String("key", "value"))

	output := buf.String()
	if !strings.Contains(output, "debug message") {
		t.Errorf("Debug output should contain message, got: %s", output)
	}
	if !strings.Contains(output, "debug") {
		t.Errorf("Debug output should contain level, got: %s", output)
	}
}

// TestZerologAdapter_Printf tests the Printf method.
func TestZerologAdapter_Printf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("formatted %s %d", "message", 42)

	if !strings.Contains(buf.String(), "formatted message 42") {
		t.Errorf("Printf should format message, got: %s", buf.String())
	}
}

// TestZerologAdapter_Println tests the Println method.
func TestZerologAdapter_Println(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Println("hello", "world")

	output := buf.String()
	if !strings.Contains(output, "hello") || !strings.Contains(output, "world") {
		t.Errorf("Println should include all arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info("test", tt.field)

			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, output)
			}
		})
	}
}

// TestNewStdLoggerAdapter tests the StdLoggerAdapter constructor.
func TestNewStdLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	stdLogger := log.New(&buf, "", 0)
	adapter := NewStdLoggerAdapter(stdLogger)

	if adapter == nil {
		t.Fatal("NewStdLoggerAdapter returned nil")
	}

	adapter.Info("test")
	if !strings.Contains(buf.String(), "test") {
		t.Errorf("StdLoggerAdapter not working, output: %s", buf.String())
	}
}

// TestStdLoggerAdapter_Levels tests the StdLoggerAdapter level methods.
func TestStdLoggerAdapter_Levels(t *testing.T) {
	tests := []struct {
		name     string
		logFn    func(Logger)
		contains []string
	}{
		{
			name:     "Info with fields",
			logFn:    func(l Logger) { l.Info("usage report", Float64("heap_used_mb", 12.5)) },
			contains: []string{"[INFO]", "usage report", "heap_used_mb=12.5"},
		},
		{
			name:     "Warn",
			logFn:    func(l Logger) { l.Warn("sampler active") },
			contains: []string{"[WARN]", "sampler active"},
		},
		{
			name:     "Error with cause",
			logFn:    func(l Logger) { l.Error("Snapshot failed", errors.New("disk full")) },
			contains: []string{"[ERROR]", "Snapshot failed", "disk full"},
		},
		{
			name:     "Debug",
			logFn:    func(l Logger) { l.Debug("gc forced") },
			contains: []string{"[DEBUG]", "gc forced"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))
			tt.logFn(adapter)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

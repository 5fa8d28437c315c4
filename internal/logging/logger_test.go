package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	batchErr := errors.New("batch aborted")

	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("word", "Fizz"), "word", "Fizz"},
		{"Int", Int("rules", 4), "rules", 4},
		{"Uint64", Uint64("heap", 12345678901234567890), "heap", uint64(12345678901234567890)},
		{"Float64", Float64("matched_pct", 46.7), "matched_pct", 46.7},
		{"Err", Err(batchErr), "error", batchErr},
		{"Err with nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.wantKey)
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.wantValue)
			}
		})
	}
}

// capture returns a component logger writing into the returned buffer.
func capture(component string) (*ZerologAdapter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(&buf, component), &buf
}

func TestConstructors(t *testing.T) {
	t.Run("NewZerologAdapter wraps an existing logger", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewZerologAdapter(zerolog.New(&buf))
		if adapter == nil {
			t.Fatal("NewZerologAdapter returned nil")
		}
		adapter.Info("batch finished")
		if !strings.Contains(buf.String(), "batch finished") {
			t.Errorf("wrapped logger produced no output: %s", buf.String())
		}
	})

	t.Run("NewDefaultLogger is usable", func(t *testing.T) {
		if NewDefaultLogger() == nil {
			t.Fatal("NewDefaultLogger returned nil")
		}
	})

	t.Run("NewLogger tags every line with the component", func(t *testing.T) {
		logger, buf := capture("server")
		logger.Info("listening")
		out := buf.String()
		if !strings.Contains(out, "server") || !strings.Contains(out, "listening") {
			t.Errorf("expected component and message, got: %s", out)
		}
	})
}

func TestZerologAdapter_Info(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		fields   []Field
		contains []string
	}{
		{"bare message", "run complete", nil, []string{"run complete", "info"}},
		{"one field", "rule added", []Field{String("word", "Fizz")}, []string{"rule added", "Fizz"}},
		{"several fields", "request served",
			[]Field{String("method", "POST"), Int("status", 200)},
			[]string{"request served", "POST", "200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := capture("test")
			logger.Info(tt.msg, tt.fields...)
			assertContainsAll(t, buf.String(), tt.contains)
		})
	}
}

func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		err      error
		fields   []Field
		contains []string
	}{
		{"with cause", "batch failed", errors.New("deadline exceeded"), nil,
			[]string{"batch failed", "deadline exceeded", "error"}},
		{"nil cause still logs at error level", "degraded", nil, nil,
			[]string{"degraded", "error"}},
		{"cause plus fields", "save failed", errors.New("permission denied"),
			[]Field{String("path", "results.txt"), Int("attempt", 2)},
			[]string{"save failed", "permission denied", "results.txt", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := capture("test")
			logger.Error(tt.msg, tt.err, tt.fields...)
			assertContainsAll(t, buf.String(), tt.contains)
		})
	}
}

func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("evaluating interval", Int("start", 1), Int("end", 100))

	out := buf.String()
	assertContainsAll(t, out, []string{"evaluating interval", "debug", "100"})
}

func TestZerologAdapter_PrintfAndPrintln(t *testing.T) {
	logger, buf := capture("test")
	logger.Printf("evaluated %d numbers", 100)
	if !strings.Contains(buf.String(), "evaluated 100 numbers") {
		t.Errorf("Printf should format its arguments, got: %s", buf.String())
	}

	logger, buf = capture("test")
	logger.Println("shutdown", "complete")
	assertContainsAll(t, buf.String(), []string{"shutdown", "complete"})
}

// Field application must handle every value type the helpers can produce,
// plus arbitrary values stringified through the interface fallback.
func TestZerologAdapter_FieldTypes(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string", Field{Key: "word", Value: "Buzz"}, "Buzz"},
		{"int", Field{Key: "span", Value: 100}, "100"},
		{"int64", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64", Field{Key: "pct", Value: 46.7}, "46.7"},
		{"error", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool", Field{Key: "quiet", Value: true}, "true"},
		{"arbitrary value", Field{Key: "data", Value: struct{ N int }{N: 7}}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := capture("test")
			logger.Info("probe", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("field type %s not rendered, output: %s", tt.name, buf.String())
			}
		})
	}
}

// stdAdapter returns a StdLoggerAdapter writing into the returned buffer.
func stdAdapter() (*StdLoggerAdapter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewStdLoggerAdapter(log.New(&buf, "", 0)), &buf
}

func TestStdLoggerAdapter_Prefixes(t *testing.T) {
	tests := []struct {
		name     string
		logFn    func(a *StdLoggerAdapter)
		contains []string
	}{
		{
			name:     "Info carries INFO prefix and fields",
			logFn:    func(a *StdLoggerAdapter) { a.Info("block removed", String("word", "Buzz")) },
			contains: []string{"[INFO]", "block removed", "word", "Buzz"},
		},
		{
			name:     "Error carries ERROR prefix and the cause",
			logFn:    func(a *StdLoggerAdapter) { a.Error("run failed", errors.New("boom"), Int("end", 15)) },
			contains: []string{"[ERROR]", "run failed", "boom", "15"},
		},
		{
			name:     "Debug carries DEBUG prefix",
			logFn:    func(a *StdLoggerAdapter) { a.Debug("tick", Int("line", 42)) },
			contains: []string{"[DEBUG]", "tick", "line", "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, buf := stdAdapter()
			tt.logFn(adapter)
			assertContainsAll(t, buf.String(), tt.contains)
		})
	}
}

func TestStdLoggerAdapter_PrintfAndPrintln(t *testing.T) {
	adapter, buf := stdAdapter()
	adapter.Printf("span is %d", 123)
	if !strings.Contains(buf.String(), "span is 123") {
		t.Errorf("Printf should format its arguments, got: %s", buf.String())
	}

	adapter, buf = stdAdapter()
	adapter.Println("a", "b", "c")
	assertContainsAll(t, buf.String(), []string{"a", "b", "c"})
}

func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
}

func assertContainsAll(t *testing.T, output string, wants []string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestPrefixWriter(t *testing.T) {
	tests := []struct {
		name   string
		writes []string
		want   string
	}{
		{name: "single line", writes: []string{"hello\n"}, want: "> hello\n"},
		{name: "two lines one write", writes: []string{"a\nb\n"}, want: "> a\n> b\n"},
		{name: "split line", writes: []string{"par", "tial\n"}, want: "> partial\n"},
		{name: "incomplete held back", writes: []string{"done\npending"}, want: "> done\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			pw := NewPrefixWriter("> ", &buf)
			for _, w := range tt.writes {
				n, err := pw.Write([]byte(w))
				if err != nil {
					t.Fatalf("Write(%q): %v", w, err)
				}
				if n != len(w) {
					t.Errorf("Write(%q) = %d, want %d", w, n, len(w))
				}
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrefixWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPrefixWriter("> ", &buf)
	if _, err := pw.Write([]byte("tail")); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("partial line written early: %q", buf.String())
	}
	if err := pw.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := pw.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "> tail" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithFormat("covmap", "info", false, &buf)

	logger.Debug("hidden")
	logger.Info("parsed", "seeds", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line emitted at info level: %q", out)
	}
	if !strings.HasPrefix(out, "🔭 ") {
		t.Errorf("missing prefix: %q", out)
	}
	if !strings.Contains(out, "seeds=3") {
		t.Errorf("missing key/value pair: %q", out)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithFormat("covmap", "debug", true, &buf)
	logger.Debug("parsed", "seeds", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["@message"] != "parsed" {
		t.Errorf("@message = %v", entry["@message"])
	}
	if entry["@module"] != "covmap" {
		t.Errorf("@module = %v", entry["@module"])
	}
}

func TestNewLoggerEnvJSON(t *testing.T) {
	t.Setenv(EnvJSONLog, "1")
	var buf bytes.Buffer
	NewLogger("covmap", "info", &buf).Info("x")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if got := GetLogLevel(); got != DefaultLevel {
		t.Errorf("GetLogLevel() = %q, want %q", got, DefaultLevel)
	}

	t.Setenv(EnvLogLevel, "trace")
	if got := GetLogLevel(); got != "trace" {
		t.Errorf("GetLogLevel() = %q, want trace", got)
	}
	if hclog.LevelFromString(GetLogLevel()) != hclog.Trace {
		t.Error("trace level not recognised by hclog")
	}
}

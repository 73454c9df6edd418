package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
)

// Environment variables read by the logger.
const (
	EnvLogLevel = "COVMAP_LOG_LEVEL"
	EnvJSONLog  = "COVMAP_JSON_LOG"
)

// DefaultLevel keeps diagnostics out of the summary unless asked for.
const DefaultLevel = "warn"

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	return NewLoggerWithFormat(name, level, os.Getenv(EnvJSONLog) == "1", output)
}

// NewLoggerWithFormat creates a logger with an explicit output format.
func NewLoggerWithFormat(name string, level string, jsonFormat bool, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if level == "" {
		level = DefaultLevel
	}

	colorOpt := hclog.ColorOff
	if !jsonFormat && isTerminal(output) {
		colorOpt = hclog.ForceColor
	}

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter("🔭 ", output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		Color:      colorOpt,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = DefaultLevel
	}
	return level
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Package logger builds the zap logger shared by the CLI and the scan
// pipeline. Diagnostics always go to stderr so that report output on stdout
// stays machine-readable.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoder.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

const (
	// EnvLevel overrides the level when no flag is given.
	EnvLevel = "CMAKE_CHECKER_LOG_LEVEL"
	// EnvFormat overrides the format when no flag is given.
	EnvFormat = "CMAKE_CHECKER_LOG_FORMAT"

	// DefaultLevel keeps a normal run silent apart from the report.
	DefaultLevel = "warn"
)

// ParseLevel converts a level name to a zap level. Unknown names fall back
// to warn.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "off", "none", "silent":
		return zapcore.FatalLevel + 1
	default:
		return zapcore.WarnLevel
	}
}

// ParseFormat returns the format named by s, defaulting to console.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatConsole
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

// New creates a logger writing to w. Empty level and format fall back to
// the environment and then to the defaults.
func New(w io.Writer, level, format string) *zap.Logger {
	if level == "" {
		level = getEnv(EnvLevel, DefaultLevel)
	}
	if format == "" {
		format = getEnv(EnvFormat, string(FormatConsole))
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var encoder zapcore.Encoder
	switch ParseFormat(format) {
	case FormatJSON:
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = timeEncoder
		encoderConfig.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core)
}

// Stderr is New writing to os.Stderr.
func Stderr(level, format string) *zap.Logger {
	return New(os.Stderr, level, format)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

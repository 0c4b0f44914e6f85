package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLevel(level string) (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// NewLogger builds the process logger. Output always goes to stderr and,
// when path is set, to that file too. Stack traces are only attached in
// debug mode.
func NewLogger(level, format, path string) (*zap.Logger, error) {
	l, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	outputs := []string{"stderr"}
	if path != "" {
		outputs = append(outputs, path)
	}

	encodeLevel := zapcore.CapitalLevelEncoder
	if format == "json" {
		encodeLevel = zapcore.LowercaseLevelEncoder
	}

	zConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(l),
		Encoding:          format,
		DisableStacktrace: l > zapcore.DebugLevel,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			StacktraceKey:  "stack",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    encodeLevel,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		},
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
	return zConfig.Build()
}

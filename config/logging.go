package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON file logger. The terminal belongs to the TUI, so
// nothing is written to stdout or stderr. verbose forces debug level.
func (c Config) NewLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Logging.Level != "" {
		if err := level.Set(c.Logging.Level); err != nil {
			return nil, fmt.Errorf("logging.level %q: %w", c.Logging.Level, err)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	file := c.ResolvedLogFile()
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{file}
	zc.ErrorOutputPaths = []string{file}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

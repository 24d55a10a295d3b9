// Package logging builds the zap logger shared by the CLI and the shop TUI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how much to log.
type Options struct {
	// Verbose lowers the level to debug and enables logging to stderr when
	// no File is set.
	Verbose bool

	// File, when set, receives JSON log lines instead of stderr. The shop
	// TUI owns the terminal, so it only ever logs to a file.
	File string
}

// New returns a production-configured logger, or a no-op logger when
// neither Verbose nor File is set.
func New(opts Options) (*zap.Logger, error) {
	if !opts.Verbose && opts.File == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.Sampling = nil
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("logging: failed to create directory for %s: %w", opts.File, err)
		}
		config.OutputPaths = []string{opts.File}
		config.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: failed to initialize logger: %w", err)
	}
	return logger.Named("pokeshop"), nil
}

// Package logging builds the zap loggers used by the CLI, the TUI and the dev backend.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	// File, when set, receives JSON logs. The TUI owns stdout, so this is the only sink
	// the interactive mode ever uses.
	File string
	// Debug lowers the level to debug.
	Debug bool
	// Console writes human-readable logs to stderr (CLI commands, dev backend).
	Console bool
	// ConsoleInfo lowers the console sink from warn to info (request logs).
	ConsoleInfo bool
}

// New returns a logger for opts and a cleanup func that flushes and closes file sinks.
// With neither File nor Console set it returns a no-op logger.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	var cores []zapcore.Core
	var closers []func()

	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = f.Close() })
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(f), level))
	}

	if opts.Console {
		consoleLevel := zapcore.WarnLevel
		switch {
		case opts.Debug:
			consoleLevel = zapcore.DebugLevel
		case opts.ConsoleInfo:
			consoleLevel = zapcore.InfoLevel
		}
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		enc := zapcore.NewConsoleEncoder(cfg)
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stderr), consoleLevel))
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	logger := zap.New(zapcore.NewTee(cores...))
	cleanup := func() {
		_ = logger.Sync()
		for _, c := range closers {
			c()
		}
	}
	return logger, cleanup, nil
}

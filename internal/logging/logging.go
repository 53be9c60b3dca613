// Package logging builds the CLI logger: structured JSON lines in the user
// cache directory, optionally mirrored to stderr in console form.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppName names the cache subdirectory and the log file
const AppName = "toran"

var levelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// Options configures New
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean warn.
	Level string

	// Verbose mirrors log lines to Stderr
	Verbose bool

	// Dir overrides the log directory (defaults to CacheDir())
	Dir string

	// Stderr receives the console copy when Verbose is set (defaults to os.Stderr)
	Stderr io.Writer
}

// ParseLevel maps a level name to a zap level, defaulting to warn
func ParseLevel(name string) zapcore.Level {
	if level, ok := levelMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level
	}
	return zapcore.WarnLevel
}

// New opens the log file and returns the logger with a cleanup function
// that flushes and closes it
func New(opts Options) (*zap.Logger, func(), error) {
	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	dir := opts.Dir
	if dir == "" {
		dir = CacheDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(dir, AppName+".log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(logFile), level),
	}

	if opts.Verbose {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(stderr), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).With(zap.String("app", AppName))
	cleanup := func() {
		_ = logger.Sync()
		_ = logFile.Close()
	}

	logger.Debug("logging initialized",
		zap.String("level", level.String()),
		zap.String("log_file", logPath),
		zap.Bool("verbose", opts.Verbose))

	return logger, cleanup, nil
}

// CacheDir returns the XDG cache directory for the application
func CacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, AppName)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir, "Library", "Caches", AppName)
	}
	return filepath.Join(homeDir, ".cache", AppName)
}

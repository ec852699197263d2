// Package logger provides verbose logging for the storedesk CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are written to stderr (or a log file while the TUI owns the terminal)
// to help users follow lookups, remote retries and imports.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// FileName is the log file written under the data directory by OpenFile.
const FileName = "storedesk.log"

var (
	mu      sync.RWMutex
	verbose bool
	log     = newConsole(os.Stderr)
)

// newConsole builds a human-readable logger without timestamps.
func newConsole(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}).Level(zerolog.DebugLevel)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = newConsole(w)
}

// OpenFile redirects verbose logs to FileName inside dir, with timestamps.
// The returned function closes the file and restores stderr output.
func OpenFile(dir string) (func() error, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	mu.Lock()
	log = zerolog.New(zerolog.ConsoleWriter{
		Out:        f,
		NoColor:    true,
		TimeFormat: "15:04:05.000",
	}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	mu.Unlock()

	return func() error {
		SetOutput(os.Stderr)
		return f.Close()
	}, nil
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Debug().Msgf(format, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Info().Str("section", name).Msg("===")
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Info().Msgf(format, args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Warn().Msgf(format, args...)
	}
}

// Package debug writes an opt-in diagnostic log for rmselect.
// Nothing is written unless Init(true) was called, which truncates
// ~/.rmselect/debug.log. The terminal is owned by the UI, so this file is
// the only place runtime details (fetches, cache hits, key routing) show up.
package debug

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	LogFileName = "debug.log"
	LogDirName  = ".rmselect"
)

// sink is the process-wide log destination. A nil logger means disabled.
type sink struct {
	mu     sync.RWMutex
	logger *log.Logger
	file   *os.File
}

var (
	out sink

	// overridden in tests
	getLogPath = defaultGetLogPath
)

// Init enables or disables logging. Enabling creates or truncates the log
// file and writes a start banner.
func Init(enable bool) error {
	if !enable {
		out.swap(nil, nil)
		return nil
	}

	path, err := getLogPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}
	f, err := openTruncated(path)
	if err != nil {
		return err
	}

	logger := log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	logger.Printf("=== rmselect debug log started at %s (pid %d) ===", time.Now().Format(time.RFC3339), os.Getpid())
	out.swap(logger, f)
	return nil
}

func openTruncated(path string) (*os.File, error) {
	//nolint:gosec // G301: lives next to the user config
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	//nolint:gosec // G304: path is derived from the home directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// swap installs a new destination, closing the previous file.
func (s *sink) swap(logger *log.Logger, f *os.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil && s.file != f {
		_ = s.file.Close()
	}
	s.logger = logger
	s.file = f
}

func (s *sink) write(emit func(*log.Logger)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger != nil {
		emit(s.logger)
	}
}

// Close stops logging and closes the log file. Safe to call repeatedly.
func Close() {
	out.swap(nil, nil)
}

// Log writes a message in the manner of fmt.Print.
func Log(v ...any) {
	out.write(func(l *log.Logger) { l.Print(v...) })
}

// Logf writes a message in the manner of fmt.Printf.
func Logf(format string, v ...any) {
	out.write(func(l *log.Logger) { l.Printf(format, v...) })
}

// Since logs how long an operation took, for use with defer:
//
//	defer debug.Since("fetch page", time.Now())
func Since(label string, start time.Time) {
	if !Enabled() {
		return
	}
	Logf("%s took %s", label, time.Since(start).Round(time.Millisecond))
}

// Enabled reports whether logging is on.
func Enabled() bool {
	out.mu.RLock()
	defer out.mu.RUnlock()
	return out.logger != nil
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns where the log file is written.
func GetLogPath() (string, error) {
	return getLogPath()
}

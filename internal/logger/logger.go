// Package logger is the process-wide diagnostic log for membridge.
//
// Messages go to stderr so command output on stdout stays pipeable. By
// default only errors are shown; --verbose lowers the threshold to debug and
// traces discovery, indexing, search and rebuilds.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders log messages by severity.
type Level int

// Log levels, least severe first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var prefixes = map[Level]string{
	LevelDebug: "[DEBUG] ",
	LevelInfo:  "[INFO] ",
	LevelWarn:  "[WARN] ",
	LevelError: "[ERROR] ",
}

var (
	mu        sync.RWMutex
	threshold Level     = LevelError
	output    io.Writer = os.Stderr
)

// SetLevel shows messages at or above l.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	threshold = l
}

// SetVerbose shows everything when v is true and only errors otherwise.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelError)
}

// IsVerbose reports whether debug messages are shown.
func IsVerbose() bool {
	return Enabled(LevelDebug)
}

// Enabled reports whether messages at l are shown.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= threshold
}

// SetOutput redirects log output. Tests use it to capture messages.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug traces a pipeline step.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info reports a notable event such as a completed rebuild.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn reports a recoverable problem, e.g. a skipped directory.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Error reports a failure. Errors are shown unless the level is raised
// above LevelError.
func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}

// Section starts a named block of debug output.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if LevelDebug >= threshold {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// logf holds the write lock so concurrent writers do not interleave.
func logf(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < threshold {
		return
	}
	fmt.Fprintf(output, prefixes[l]+format+"\n", args...)
}

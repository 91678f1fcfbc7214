// Package logging sets up the charmbracelet logger shared by the
// command-line tool and the desktop GUI.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout of every log line
const TimeFormat = "15:04:05"

var (
	mu  sync.RWMutex
	std = New(os.Stderr, "info")
)

// New creates a logger writing to w at the given level
// Unknown levels fall back to info
func New(w io.Writer, level string) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           ParseLevel(level),
	})
}

// ParseLevel converts a level name (debug, info, warn, error) to a charm level
func ParseLevel(level string) charmlog.Level {
	lvl, err := charmlog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return charmlog.InfoLevel
	}
	return lvl
}

// Init replaces the default logger
func Init(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	std = New(w, level)
}

// Default returns the shared logger
func Default() *charmlog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// SetOutput redirects the shared logger, used by the GUI log viewer
func SetOutput(w io.Writer) {
	Default().SetOutput(w)
}

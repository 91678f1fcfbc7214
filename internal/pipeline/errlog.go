package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Messages written to the error log
const (
	msgInvalidKey    = "Invalid API Key"
	errLogTimeFormat = "Mon Jan _2 15:04:05 2006"
)

// errorLog appends chunk failures to a text file
type errorLog struct {
	path string
	now  func() time.Time
}

func newErrorLog(path string) *errorLog {
	return &errorLog{path: path, now: time.Now}
}

// ChunkFailed records that chunk could not be processed
func (l *errorLog) ChunkFailed(chunk int, message string) error {
	if l.path == "" {
		return nil
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating error log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening error log: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "--- Chunk %d Failed ---\nTimestamp: %s\nError: %s\n\n",
		chunk, l.now().Format(errLogTimeFormat), message)
	if err != nil {
		return fmt.Errorf("writing error log: %w", err)
	}
	return nil
}

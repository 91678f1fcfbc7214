package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/export"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// ErrNothingToArchive is returned when none of the output files exist
var ErrNothingToArchive = errors.New("nothing to archive")

// OutputFiles lists the files a run writes for cfg
func OutputFiles(cfg *config.Config) []string {
	return []string{
		cfg.NounsJSONFile,
		cfg.OutputExcel,
		export.MasterPath(cfg.OutputExcel),
		cfg.ErrorLog,
	}
}

// ArchiveOutputs moves the existing files into a timestamped directory
// below baseDir/archive and returns its path
func ArchiveOutputs(baseDir string, files []string) (string, error) {
	var existing []string
	for _, f := range files {
		if f == "" {
			continue
		}
		if info, err := os.Stat(f); err == nil && !info.IsDir() {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return "", ErrNothingToArchive
	}

	archiveDir := filepath.Join(baseDir, "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, "glossary-"+timestamp)

	// Two archives within one second
	if _, err := os.Stat(archivePath); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, "glossary-"+timestamp)
	}

	if err := os.MkdirAll(archivePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", archivePath, err)
	}

	used := make(map[string]bool)
	for _, f := range existing {
		name := uniqueName(filepath.Base(f), used)
		if err := os.Rename(f, filepath.Join(archivePath, name)); err != nil {
			return archivePath, fmt.Errorf("failed to archive %s: %w", f, err)
		}
		logging.Default().Debug("Archived", "file", f, "to", archivePath)
	}

	fmt.Printf("Outputs archived to: %s\n", archivePath)
	return archivePath, nil
}

func uniqueName(name string, used map[string]bool) string {
	candidate := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	used[candidate] = true
	return candidate
}

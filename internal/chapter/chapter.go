// Package chapter lists, groups and reads the numbered chapter files of a
// raw novel folder.
package chapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// ErrFolderNotFound is returned when the raws folder does not exist
var ErrFolderNotFound = errors.New("raws folder not found")

var chapterPattern = regexp.MustCompile(`^(\d+)\.txt$`)

// ListChapters returns the numbered .txt files of dir in numeric order
func ListChapters(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, dir)
		}
		return nil, fmt.Errorf("failed to access raws folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrFolderNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read raws folder: %w", err)
	}

	type numbered struct {
		path string
		num  int
	}
	var found []numbered
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := chapterPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = append(found, numbered{path: filepath.Join(dir, entry.Name()), num: num})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].num < found[j].num
	})

	files := make([]string, 0, len(found))
	for _, f := range found {
		files = append(files, f.path)
	}
	return files, nil
}

// GroupIntoChunks splits files into consecutive groups of up to size files
func GroupIntoChunks(files []string, size int) [][]string {
	if size < 1 {
		size = 1
	}

	var chunks [][]string
	for start := 0; start < len(files); start += size {
		end := start + size
		if end > len(files) {
			end = len(files)
		}
		chunks = append(chunks, files[start:end])
	}
	return chunks
}

// CombineChapters joins the contents of files with newlines
// Files that cannot be read are skipped with a warning.
func CombineChapters(files []string) string {
	parts := make([]string, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			logging.Default().Warn("Skipping unreadable chapter", "file", f, "err", err)
			continue
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n")
}

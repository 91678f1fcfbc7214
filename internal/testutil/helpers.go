package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"codeberg.org/snonux/glossarymaker/internal/glossary"
)

// CreateTestDirectory creates a temporary project layout for testing
func CreateTestDirectory(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()

	dirs := []string{
		"raws",
		"output",
	}

	for _, dir := range dirs {
		path := filepath.Join(tempDir, dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			t.Fatalf("Failed to create test directory %s: %v", path, err)
		}
	}

	return tempDir
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateChapters writes numbered chapter files into dir, starting at 1
func CreateChapters(t *testing.T, dir string, chapters ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(chapters))
	for i, text := range chapters {
		path := filepath.Join(dir, strconv.Itoa(i+1)+".txt")
		CreateTestFile(t, path, []byte(text))
		paths = append(paths, path)
	}
	return paths
}

// ReadNouns loads a nouns.json file
func ReadNouns(t *testing.T, path string) []glossary.Noun {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}

	var nouns []glossary.Noun
	if err := json.Unmarshal(data, &nouns); err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
	return nouns
}

// FindNoun returns the entry with the given hangul
func FindNoun(nouns []glossary.Noun, hangul string) (glossary.Noun, bool) {
	for _, n := range nouns {
		if n.Hangul == hangul {
			return n, true
		}
	}
	return glossary.Noun{}, false
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}

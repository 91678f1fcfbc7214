package chapter

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeChapters(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func TestListChapters_NumericOrder(t *testing.T) {
	dir := t.TempDir()
	writeChapters(t, dir, map[string]string{
		"10.txt":       "ten",
		"2.txt":        "two",
		"1.txt":        "one",
		"notes.txt":    "ignored",
		"3.md":         "ignored",
		"chapter4.txt": "ignored",
	})
	if err := os.Mkdir(filepath.Join(dir, "5.txt"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	files, err := ListChapters(dir)
	if err != nil {
		t.Fatalf("ListChapters failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "1.txt"),
		filepath.Join(dir, "2.txt"),
		filepath.Join(dir, "10.txt"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Expected %v, got %v", want, files)
	}
}

func TestListChapters_EmptyFolder(t *testing.T) {
	files, err := ListChapters(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error for empty folder, got: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected no files, got %d", len(files))
	}
}

func TestListChapters_MissingFolder(t *testing.T) {
	_, err := ListChapters(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrFolderNotFound) {
		t.Errorf("Expected ErrFolderNotFound, got: %v", err)
	}
}

func TestGroupIntoChunks(t *testing.T) {
	files := []string{"1", "2", "3", "4", "5"}

	tests := []struct {
		name string
		size int
		want [][]string
	}{
		{"even split", 5, [][]string{{"1", "2", "3", "4", "5"}}},
		{"remainder", 2, [][]string{{"1", "2"}, {"3", "4"}, {"5"}}},
		{"zero treated as one", 0, [][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}}},
		{"larger than input", 10, [][]string{{"1", "2", "3", "4", "5"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupIntoChunks(files, tt.size)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	if got := GroupIntoChunks(nil, 3); len(got) != 0 {
		t.Errorf("Expected no chunks for empty input, got %v", got)
	}
}

func TestCombineChapters(t *testing.T) {
	dir := t.TempDir()
	writeChapters(t, dir, map[string]string{
		"1.txt": "첫 번째",
		"2.txt": "두 번째",
	})

	combined := CombineChapters([]string{
		filepath.Join(dir, "1.txt"),
		filepath.Join(dir, "missing.txt"),
		filepath.Join(dir, "2.txt"),
	})

	if combined != "첫 번째\n두 번째" {
		t.Errorf("Unexpected combined text: %q", combined)
	}
}

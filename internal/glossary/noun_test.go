package glossary

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nouns.json"))

	nouns, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(nouns) != 0 {
		t.Errorf("Expected empty glossary, got %d entries", len(nouns))
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "nouns.json")
	store := NewStore(path)

	want := []Noun{
		{Hangul: "남궁세가", Hanja: "南宮世家", English: "Namgung Clan", Category: "locations and organizations", Frequency: 4, Chinese: "南宫世家"},
		{Hangul: "검성", Hanja: "劍聖", English: "Sword Saint", Category: "character titles", Frequency: 2, Ambiguous: true},
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temporary file left behind")
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestStore_LoadDropsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nouns.json")
	content := `[
  {"hangul": "검성", "hanja": "劍聖", "english": "", "category": "", "frequency": 1},
  {"hangul": "", "hanja": "無名"},
  {"hangul": "검성", "hanja": "duplicate"}
]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	nouns, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(nouns) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(nouns))
	}
	if nouns[0].Hanja != "劍聖" {
		t.Errorf("Expected first entry to win, got hanja %s", nouns[0].Hanja)
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nouns.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := NewStore(path).Load(); err == nil {
		t.Error("Expected error for corrupt glossary")
	}
}

func TestStore_SaveNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nouns.json")
	if err := NewStore(path).Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected empty JSON array, got %q", data)
	}
}

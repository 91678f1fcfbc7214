package dictionary

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestCache_PutGet(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache", "dict.db"))
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer cache.Close()

	if _, ok, err := cache.Get("사람"); err != nil || ok {
		t.Fatalf("Expected miss on empty cache, got ok=%v err=%v", ok, err)
	}

	want := Entry{Word: "사람", Found: true, Common: true, Meanings: []string{"person"}, WordType: "명사"}
	if err := cache.Put(want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := cache.Get("사람")
	if err != nil || !ok {
		t.Fatalf("Expected hit, got ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	want.Common = false
	if err := cache.Put(want); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	got, _, _ = cache.Get("사람")
	if got.Common {
		t.Error("Expected entry to be replaced")
	}

	if n, err := cache.Len(); err != nil || n != 1 {
		t.Errorf("Expected 1 cached word, got %d (err=%v)", n, err)
	}
}

func TestCache_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.db")

	cache, err := OpenCache(path)
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	if err := cache.Put(Entry{Word: "정도"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	cache.Close()

	reopened, err := OpenCache(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	e, ok, err := reopened.Get("정도")
	if err != nil || !ok {
		t.Fatalf("Expected persisted entry, got ok=%v err=%v", ok, err)
	}
	if e.WordType != "unknown" {
		t.Errorf("Expected default word type, got %q", e.WordType)
	}
	if len(e.Meanings) != 0 {
		t.Errorf("Expected no meanings, got %v", e.Meanings)
	}
}

package glossary

import "testing"

func TestMerge_ExistingWins(t *testing.T) {
	existing := []Noun{
		{Hangul: "검성", Hanja: "劍聖", English: "Sword Saint"},
	}
	incoming := []Noun{
		{Hangul: "검성", Hanja: "", English: "Blade Master"},
		{Hangul: " 천마 ", Hanja: "天魔"},
		{Hangul: ""},
	}

	merged := Merge(existing, incoming)
	if len(merged) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(merged))
	}
	if merged[0].English != "Sword Saint" {
		t.Errorf("Expected existing entry to win, got %s", merged[0].English)
	}
	if merged[1].Hangul != "천마" {
		t.Errorf("Expected trimmed hangul, got %q", merged[1].Hangul)
	}
}

func TestMergeReference(t *testing.T) {
	master := []Noun{
		{Hangul: "검성", English: "Sword Saint", Frequency: 7},
	}
	refs := []Noun{
		{Hangul: "검성", English: "Other"},
		{Hangul: "화산파", Hanja: " 華山派 ", English: "Mount Hua Sect ", Category: "locations and organizations", Frequency: 99},
	}

	merged, added := MergeReference(master, refs)
	if added != 1 {
		t.Errorf("Expected 1 added entry, got %d", added)
	}
	if merged[0].English != "Sword Saint" || merged[0].Frequency != 7 {
		t.Errorf("Master entry was modified: %+v", merged[0])
	}

	ref := merged[1]
	if ref.Hanja != "華山派" || ref.English != "Mount Hua Sect" {
		t.Errorf("Expected trimmed reference fields, got %+v", ref)
	}
	if ref.Frequency != 0 {
		t.Errorf("Expected reference frequency reset to 0, got %d", ref.Frequency)
	}
}

func TestHanguls(t *testing.T) {
	set := Hanguls([]Noun{{Hangul: "가나"}, {Hangul: "다라"}})
	if _, ok := set["가나"]; !ok {
		t.Error("Expected 가나 in set")
	}
	if len(set) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(set))
	}
}

package ambiguity

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/snonux/glossarymaker/internal/dictionary"
	"codeberg.org/snonux/glossarymaker/internal/glossary"
)

type fakeDict map[string]dictionary.Entry

func (f fakeDict) Lookup(_ context.Context, word string) (dictionary.Entry, error) {
	if word == "오류" {
		return dictionary.Entry{}, errors.New("network down")
	}
	return f[word], nil
}

func TestStripParticle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"화산파는", "화산파"},
		{"남궁세가의", "남궁세가"},
		{"천마신교에게", "천마신교"},
		{"화산파", "화산파"},
		{"검은", "검은"},
		{"무림맹", "무림맹"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := StripParticle(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestHasPunctuation(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"화산파", false},
		{"화산!", true},
		{"「검」", true},
		{"천마…", true},
		{"a.b", true},
	}

	for _, tt := range tests {
		if got := HasPunctuation(tt.input); got != tt.expected {
			t.Errorf("HasPunctuation(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestIsAmbiguous(t *testing.T) {
	dict := fakeDict{
		"사람": {Word: "사람", Found: true, Common: true},
		"천마": {Word: "천마", Found: true, Common: false},
	}
	master := []glossary.Noun{{Hangul: "청명", English: "Chung Myung"}}
	d := NewDetector(dict, master)
	ctx := context.Background()

	tests := []struct {
		name     string
		noun     glossary.Noun
		expected bool
	}{
		{"single char", glossary.Noun{Hangul: "검"}, true},
		{"blacklisted with translation", glossary.Noun{Hangul: "정도", English: "Righteous Path"}, true},
		{"ends with particle", glossary.Noun{Hangul: "검은", English: "black"}, true},
		{"has english", glossary.Noun{Hangul: "당보", English: "Tang Bo"}, false},
		{"has hanja", glossary.Noun{Hangul: "당보", Hanja: "唐寶"}, false},
		{"known translation", glossary.Noun{Hangul: "청명"}, false},
		{"common dictionary word", glossary.Noun{Hangul: "사람"}, false},
		{"uncommon dictionary word", glossary.Noun{Hangul: "천마"}, true},
		{"missing from dictionary", glossary.Noun{Hangul: "운검"}, true},
		{"lookup error", glossary.Noun{Hangul: "오류"}, true},
		{"three chars", glossary.Noun{Hangul: "화산파"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsAmbiguous(ctx, tt.noun); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIsAmbiguous_NoDictionary(t *testing.T) {
	d := NewDetector(nil, nil)
	if !d.IsAmbiguous(context.Background(), glossary.Noun{Hangul: "사람"}) {
		t.Error("Expected bare two character word to be ambiguous without a dictionary")
	}
}

func TestRun(t *testing.T) {
	nouns := []glossary.Noun{
		{Hangul: "화산파", English: "Mount Hua Sect"},
		{Hangul: "검"},
		{Hangul: "화산!"},
		{Hangul: "  "},
		{Hangul: "천마신교"},
		{Hangul: "천마신교의"},
		{Hangul: "운검"},
		{Hangul: "당보", English: "Tang Bo"},
	}

	d := NewDetector(nil, nil)
	got, stats := d.Run(context.Background(), nouns)

	if len(got) != 4 {
		t.Fatalf("Expected 4 nouns, got %d: %+v", len(got), got)
	}
	if stats.Punctuation != 2 {
		t.Errorf("Expected 2 punctuation removals, got %d", stats.Punctuation)
	}
	if stats.SingleChar != 1 {
		t.Errorf("Expected 1 single char removal, got %d", stats.SingleChar)
	}
	if stats.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate removal, got %d", stats.Duplicates)
	}
	if stats.Ambiguous != 1 || stats.Kept != 4 {
		t.Errorf("Expected 1 ambiguous of 4 kept, got %d of %d", stats.Ambiguous, stats.Kept)
	}

	want := map[string]bool{"화산파": false, "천마신교": false, "운검": true, "당보": false}
	for _, n := range got {
		expected, ok := want[n.Hangul]
		if !ok {
			t.Errorf("Unexpected noun %q", n.Hangul)
			continue
		}
		if n.Ambiguous != expected {
			t.Errorf("%s: expected ambiguous %v, got %v", n.Hangul, expected, n.Ambiguous)
		}
	}
}

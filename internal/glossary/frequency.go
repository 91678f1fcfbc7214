package glossary

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses every whitespace run into a single space
func NormalizeWhitespace(text string) string {
	return whitespaceRun.ReplaceAllString(text, " ")
}

// CountFrequencies adds the occurrence count of each hangul in text
// Counts are literal and non-overlapping over whitespace-normalised text
// and are added to any frequency the entry already has.
func CountFrequencies(nouns []Noun, text string) {
	normalized := NormalizeWhitespace(text)
	for i := range nouns {
		if nouns[i].Hangul == "" {
			continue
		}
		nouns[i].Frequency += strings.Count(normalized, nouns[i].Hangul)
	}
}

// FilterZeroFrequency drops entries that never occur
// It returns the kept entries and how many were removed.
func FilterZeroFrequency(nouns []Noun) ([]Noun, int) {
	kept := make([]Noun, 0, len(nouns))
	for _, n := range nouns {
		if n.Frequency > 0 {
			kept = append(kept, n)
		}
	}
	return kept, len(nouns) - len(kept)
}

// Sort orders entries by hangul length, then frequency, both descending
// Ties keep their relative order.
func Sort(nouns []Noun) {
	sort.SliceStable(nouns, func(i, j int) bool {
		li := utf8.RuneCountInString(nouns[i].Hangul)
		lj := utf8.RuneCountInString(nouns[j].Hangul)
		if li != lj {
			return li > lj
		}
		return nouns[i].Frequency > nouns[j].Frequency
	})
}

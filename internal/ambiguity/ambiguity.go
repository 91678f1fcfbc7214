// Package ambiguity cleans up locally extracted glossary entries and flags
// short terms that are likely ordinary words rather than proper nouns.
package ambiguity

import (
	"context"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/glossarymaker/internal/dictionary"
	"codeberg.org/snonux/glossarymaker/internal/glossary"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// particles are Korean postpositions, checked in this order
var particles = []string{
	"은", "는", "이", "가", "을", "를", "의", "에게", "한테", "에", "에서",
	"으로", "로", "아", "야", "도", "과", "와", "랑",
}

// blacklist holds two character words that are ambiguous even with a translation
var blacklist = map[string]bool{
	"신의": true, "마의": true, "개방": true, "정도": true,
	"기도": true, "화기": true, "전장": true, "보도": true,
}

const punctuation = `!"#$%&'()*+,-./:;<=>?@[\]^_` + "`" + `{|}~` +
	"。，、；：「」『』（）［］｛｝【】《》〈〉！？～…・‧" +
	"·•―–—′″‘’‚‛“”„‟‹›«»¡¿¨´ˆ˜¯˘˙˚¸˝˛ˇ"

// Lookuper answers dictionary queries
type Lookuper interface {
	Lookup(ctx context.Context, word string) (dictionary.Entry, error)
}

// Stats counts what a detection run removed and flagged
type Stats struct {
	Punctuation int
	SingleChar  int
	Duplicates  int
	Ambiguous   int
	Kept        int
}

// Detector flags ambiguous entries
type Detector struct {
	dict         Lookuper
	translations map[string]string
}

// NewDetector creates a detector
// dict may be nil to skip dictionary checks. Translations known in master
// count as evidence that a term is a proper noun.
func NewDetector(dict Lookuper, master []glossary.Noun) *Detector {
	translations := make(map[string]string)
	for _, n := range master {
		if n.Hangul != "" && strings.TrimSpace(n.English) != "" {
			translations[n.Hangul] = strings.TrimSpace(n.English)
		}
	}
	return &Detector{dict: dict, translations: translations}
}

// HasPunctuation reports whether s contains any punctuation character
func HasPunctuation(s string) bool {
	return strings.ContainsAny(s, punctuation)
}

// EndsWithParticle reports whether s ends with a Korean particle
func EndsWithParticle(s string) bool {
	for _, p := range particles {
		if strings.HasSuffix(s, p) {
			return true
		}
	}
	return false
}

// StripParticle removes one trailing particle from terms longer than three
// characters, as long as at least two characters remain
func StripParticle(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= 3 {
		return s
	}
	for _, p := range particles {
		if !strings.HasSuffix(s, p) {
			continue
		}
		stripped := strings.TrimSuffix(s, p)
		if utf8.RuneCountInString(stripped) >= 2 {
			return stripped
		}
	}
	return s
}

// IsAmbiguous decides whether a single entry is ambiguous
func (d *Detector) IsAmbiguous(ctx context.Context, n glossary.Noun) bool {
	hangul := strings.TrimSpace(n.Hangul)
	length := utf8.RuneCountInString(hangul)

	if length <= 1 {
		return true
	}
	if length >= 3 {
		return false
	}

	clean := strings.TrimSpace(strings.ReplaceAll(hangul, "##", ""))
	if blacklist[clean] {
		return true
	}
	if EndsWithParticle(hangul) {
		return true
	}
	if strings.TrimSpace(n.English) != "" || strings.TrimSpace(n.Hanja) != "" {
		return false
	}
	if _, ok := d.translations[clean]; ok {
		return false
	}

	if d.dict != nil {
		e, err := d.dict.Lookup(ctx, clean)
		if err != nil {
			logging.Default().Debug("Dictionary lookup failed", "word", clean, "err", err)
		} else if e.Found && e.Common {
			return false
		}
	}

	return true
}

// Run filters nouns and sets their ambiguous flag
//
// Entries with punctuation or a single character are removed, entries of
// four or more characters that repeat an earlier one once a particle is
// stripped are removed, and the rest are flagged.
func (d *Detector) Run(ctx context.Context, nouns []glossary.Noun) ([]glossary.Noun, Stats) {
	var stats Stats
	seen := make(map[string]struct{})
	out := make([]glossary.Noun, 0, len(nouns))

	for _, n := range nouns {
		hangul := strings.TrimSpace(n.Hangul)
		if hangul == "" || HasPunctuation(hangul) {
			stats.Punctuation++
			continue
		}

		length := utf8.RuneCountInString(hangul)
		if length == 1 {
			stats.SingleChar++
			continue
		}

		if length > 3 {
			key := StripParticle(hangul)
			if _, dup := seen[key]; dup {
				stats.Duplicates++
				continue
			}
			seen[key] = struct{}{}
		}

		n.Ambiguous = length == 2 && d.IsAmbiguous(ctx, n)
		if n.Ambiguous {
			stats.Ambiguous++
		}
		out = append(out, n)
	}

	stats.Kept = len(out)
	logging.Default().Info("Ambiguity detection complete",
		"kept", stats.Kept,
		"ambiguous", stats.Ambiguous,
		"punctuation", stats.Punctuation,
		"single_char", stats.SingleChar,
		"duplicates", stats.Duplicates,
	)
	return out, stats
}

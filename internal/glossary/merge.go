package glossary

import "strings"

// Merge appends incoming entries whose hangul is not in existing yet
// Existing entries always win; entries without hangul are dropped.
func Merge(existing, incoming []Noun) []Noun {
	merged := make([]Noun, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	add := func(n Noun) {
		n.Hangul = strings.TrimSpace(n.Hangul)
		if n.Hangul == "" {
			return
		}
		if _, dup := seen[n.Hangul]; dup {
			return
		}
		seen[n.Hangul] = struct{}{}
		merged = append(merged, n)
	}

	for _, n := range existing {
		add(n)
	}
	for _, n := range incoming {
		add(n)
	}
	return merged
}

// MergeReference seeds master with reference entries
// Reference fields are trimmed and the frequency starts at zero. It
// returns the merged glossary and the number of entries added.
func MergeReference(master, refs []Noun) ([]Noun, int) {
	cleaned := make([]Noun, 0, len(refs))
	for _, r := range refs {
		cleaned = append(cleaned, Noun{
			Hangul:   strings.TrimSpace(r.Hangul),
			Hanja:    strings.TrimSpace(r.Hanja),
			English:  strings.TrimSpace(r.English),
			Category: strings.TrimSpace(r.Category),
		})
	}

	before := len(Merge(nil, master))
	merged := Merge(master, cleaned)
	return merged, len(merged) - before
}

package glossary

import (
	"regexp"
	"unicode/utf8"
)

// hanjaPairPattern matches "한글 (漢字)" with optional space before the parenthesis
var hanjaPairPattern = regexp.MustCompile(`([가-힣]+)\s*\(([\x{4E00}-\x{9FFF}\x{F900}-\x{FAFF}]+)\)`)

// ExtractHanjaPairs finds terms written with their hanja in parentheses
// The hangul must be at least two characters and as long as the hanja.
// The first occurrence of a hangul wins.
func ExtractHanjaPairs(text string) []Noun {
	var found []Noun
	seen := make(map[string]struct{})

	for _, m := range hanjaPairPattern.FindAllStringSubmatch(text, -1) {
		hangul, hanja := m[1], m[2]
		n := utf8.RuneCountInString(hangul)
		if n < 2 || n != utf8.RuneCountInString(hanja) {
			continue
		}
		if _, dup := seen[hangul]; dup {
			continue
		}
		seen[hangul] = struct{}{}
		found = append(found, Noun{Hangul: hangul, Hanja: hanja})
	}

	return found
}

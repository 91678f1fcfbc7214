package internal

import "strings"

// MaxSheetNameLength is the longest sheet name a workbook accepts
const MaxSheetNameLength = 31

// SanitizeSheetName creates a safe worksheet name from a category
// Characters the xlsx format rejects are replaced with '_' and the name
// is truncated to MaxSheetNameLength runes
func SanitizeSheetName(s string) string {
	var b strings.Builder
	count := 0
	for _, r := range strings.TrimSpace(s) {
		if count == MaxSheetNameLength {
			break
		}
		if isForbiddenSheetRune(r) {
			r = '_'
		}
		b.WriteRune(r)
		count++
	}

	name := strings.Trim(b.String(), "'")
	if name == "" {
		return "Sheet"
	}
	return name
}

// isForbiddenSheetRune checks if a rune is not allowed in sheet names
func isForbiddenSheetRune(r rune) bool {
	switch r {
	case ':', '\\', '/', '?', '*', '[', ']':
		return true
	}
	return false
}

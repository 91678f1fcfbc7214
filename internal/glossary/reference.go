package glossary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// header aliases for reference workbooks, lower case
var columnAliases = map[string][]string{
	"hangul":   {"hangul", "한글", "korean"},
	"hanja":    {"hanja", "한자", "chinese"},
	"english":  {"english", "영어", "translation"},
	"category": {"category", "카테고리", "type"},
}

// LoadReference reads a reference glossary from an .xlsx or .txt file
func LoadReference(path string) ([]Noun, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadWorkbook(path)
	case ".txt":
		return loadText(path)
	}
	return nil, fmt.Errorf("unsupported reference file type: %s", path)
}

// loadWorkbook reads every sheet of a workbook whose header has a hangul column
func loadWorkbook(path string) ([]Noun, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference workbook: %w", err)
	}
	defer f.Close()

	var nouns []Noun
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet '%s': %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		cols := headerColumns(rows[0])
		if _, ok := cols["hangul"]; !ok {
			continue
		}

		for _, row := range rows[1:] {
			n := Noun{
				Hangul:   cell(row, cols, "hangul"),
				Hanja:    cell(row, cols, "hanja"),
				English:  cell(row, cols, "english"),
				Category: cell(row, cols, "category"),
			}
			if n.Hangul != "" {
				nouns = append(nouns, n)
			}
		}
	}

	return nouns, nil
}

// headerColumns maps field names to column indexes; the first match wins
func headerColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range columnAliases {
			if _, taken := cols[field]; taken {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[field] = i
				}
			}
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// loadText reads "hangul = english" lines
// A line without '=' is a bare term. Blank lines and lines starting with
// '#' are skipped.
func loadText(path string) ([]Noun, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference file: %w", err)
	}

	var nouns []Noun
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		hangul, english, _ := strings.Cut(line, "=")
		hangul = strings.TrimSpace(hangul)
		if hangul == "" {
			continue
		}
		nouns = append(nouns, Noun{
			Hangul:  hangul,
			English: strings.TrimSpace(english),
		})
	}

	return nouns, nil
}

// Package export writes the glossary workbooks.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/glossarymaker/internal"
	"codeberg.org/snonux/glossarymaker/internal/glossary"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// MasterSheet is the sheet name of the master workbook
const MasterSheet = "All Nouns"

// UncategorizedSheet holds every row when no noun matches a category
const UncategorizedSheet = "uncategorized"

// SheetCount is the number of rows written to one sheet
type SheetCount struct {
	Sheet    string
	Category string
	Rows     int
}

// Result describes the written workbooks
type Result struct {
	CategorizedPath string
	MasterPath      string
	Sheets          []SheetCount
	Total           int
}

// MasterPath returns the master workbook path for output
func MasterPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_master" + ext
}

// Columns returns the header row
func Columns(withChinese bool) []string {
	if withChinese {
		return []string{"hangul", "hanja", "chinese", "english", "category", "frequency"}
	}
	return []string{"hangul", "hanja", "english", "category", "frequency"}
}

// WriteWorkbooks writes the categorised workbook to path and the master
// workbook next to it, replacing existing files
func WriteWorkbooks(path string, nouns []glossary.Noun, categories []string, withChinese bool) (*Result, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	sheets, err := writeCategorized(path, nouns, categories, withChinese)
	if err != nil {
		return nil, err
	}

	master := MasterPath(path)
	if err := writeMaster(master, nouns, withChinese); err != nil {
		return nil, err
	}

	return &Result{
		CategorizedPath: path,
		MasterPath:      master,
		Sheets:          sheets,
		Total:           len(nouns),
	}, nil
}

func writeCategorized(path string, nouns []glossary.Noun, categories []string, withChinese bool) ([]SheetCount, error) {
	logger := logging.Default()
	header := dropColumn(Columns(withChinese), "category")

	byCategory := make(map[string][]glossary.Noun)
	for _, n := range nouns {
		byCategory[n.Category] = append(byCategory[n.Category], n)
	}

	w := newWorkbook()
	defer w.close()

	var counts []SheetCount
	used := make(map[string]bool)
	for _, category := range categories {
		rows := byCategory[category]
		if len(rows) == 0 {
			continue
		}

		name := uniqueSheetName(internal.SanitizeSheetName(category), used)
		if err := w.addSheet(name, header, rows, withChinese, false); err != nil {
			return nil, err
		}
		counts = append(counts, SheetCount{Sheet: name, Category: category, Rows: len(rows)})
		logger.Info("Wrote sheet", "sheet", name, "rows", len(rows))
	}

	if len(counts) == 0 {
		if err := w.addSheet(UncategorizedSheet, header, nouns, withChinese, false); err != nil {
			return nil, err
		}
		counts = append(counts, SheetCount{Sheet: UncategorizedSheet, Rows: len(nouns)})
		logger.Warn("No noun matched a category, wrote a single sheet", "sheet", UncategorizedSheet)
	}

	if err := w.save(path); err != nil {
		return nil, err
	}
	logger.Info("Created categorized workbook", "path", path)
	return counts, nil
}

func writeMaster(path string, nouns []glossary.Noun, withChinese bool) error {
	w := newWorkbook()
	defer w.close()

	if err := w.addSheet(MasterSheet, Columns(withChinese), nouns, withChinese, true); err != nil {
		return err
	}
	if err := w.save(path); err != nil {
		return err
	}
	logging.Default().Info("Created master workbook", "path", path)
	return nil
}

func dropColumn(columns []string, name string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != name {
			out = append(out, c)
		}
	}
	return out
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		runes := []rune(name)
		if len(runes)+len(suffix) > internal.MaxSheetNameLength {
			runes = runes[:internal.MaxSheetNameLength-len(suffix)]
		}
		candidate = string(runes) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// row converts a noun into cell values in header order
func row(n glossary.Noun, withChinese, withCategory bool) []interface{} {
	cells := []interface{}{n.Hangul, n.Hanja}
	if withChinese {
		cells = append(cells, n.Chinese)
	}
	cells = append(cells, n.English)
	if withCategory {
		cells = append(cells, n.Category)
	}
	return append(cells, n.Frequency)
}

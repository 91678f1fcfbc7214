package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/glossary"
)

func testNouns() []glossary.Noun {
	return []glossary.Noun{
		{Hangul: "매화검법", Hanja: "梅花劍法", Chinese: "梅花剑法", English: "Plum Blossom Sword Art", Category: config.CategorySkills, Frequency: 12},
		{Hangul: "청명", Hanja: "靑明", English: "Chung Myung", Category: config.CategoryNames, Frequency: 40},
		{Hangul: "당보", English: "Tang Bo", Category: config.CategoryNames, Frequency: 8},
		{Hangul: "무언가", English: "Something", Category: "unlisted", Frequency: 1},
	}
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestMasterPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"glossary.xlsx", "glossary_master.xlsx"},
		{"out/nouns.xlsx", "out/nouns_master.xlsx"},
	}

	for _, tt := range tests {
		if got := MasterPath(tt.input); got != tt.expected {
			t.Errorf("MasterPath(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestWriteWorkbooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "glossary.xlsx")

	res, err := WriteWorkbooks(path, testNouns(), config.DefaultCategories, true)
	if err != nil {
		t.Fatalf("WriteWorkbooks failed: %v", err)
	}
	if res.Total != 4 {
		t.Errorf("Expected total 4, got %d", res.Total)
	}

	f := openWorkbook(t, path)
	sheets := f.GetSheetList()
	expected := []string{config.CategoryNames, config.CategorySkills}
	if strings.Join(sheets, ",") != strings.Join(expected, ",") {
		t.Fatalf("Expected sheets %v, got %v", expected, sheets)
	}

	rows, err := f.GetRows(config.CategoryNames)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "hangul,hanja,chinese,english,frequency" {
		t.Errorf("Unexpected header %v", rows[0])
	}
	if rows[1][0] != "청명" || rows[1][4] != "40" {
		t.Errorf("Unexpected first row %v", rows[1])
	}

	panes, err := f.GetPanes(config.CategoryNames)
	if err != nil {
		t.Fatalf("GetPanes failed: %v", err)
	}
	if !panes.Freeze || panes.YSplit != 1 {
		t.Errorf("Expected frozen header row, got %+v", panes)
	}

	styleID, err := f.GetCellStyle(config.CategoryNames, "A1")
	if err != nil {
		t.Fatalf("GetCellStyle failed: %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle failed: %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Error("Expected bold header")
	}

	if len(res.Sheets) != 2 || res.Sheets[0].Rows != 2 || res.Sheets[1].Rows != 1 {
		t.Errorf("Unexpected sheet counts %+v", res.Sheets)
	}
}

func TestWriteWorkbooks_Master(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.xlsx")

	res, err := WriteWorkbooks(path, testNouns(), config.DefaultCategories, false)
	if err != nil {
		t.Fatalf("WriteWorkbooks failed: %v", err)
	}

	f := openWorkbook(t, res.MasterPath)
	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != MasterSheet {
		t.Fatalf("Expected single %q sheet, got %v", MasterSheet, sheets)
	}

	rows, err := f.GetRows(MasterSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("Expected header plus 4 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "hangul,hanja,english,category,frequency" {
		t.Errorf("Unexpected header %v", rows[0])
	}
	if rows[4][3] != "unlisted" {
		t.Errorf("Expected unlisted category in master, got %v", rows[4])
	}
}

func TestWriteWorkbooks_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.xlsx")

	if _, err := WriteWorkbooks(path, testNouns(), config.DefaultCategories, false); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if _, err := WriteWorkbooks(path, testNouns()[:1], config.DefaultCategories, false); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	f := openWorkbook(t, path)
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != config.CategorySkills {
		t.Errorf("Expected only the skills sheet, got %v", sheets)
	}
}

func TestWriteWorkbooks_NoMatchingCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.xlsx")
	nouns := []glossary.Noun{{Hangul: "청명", Frequency: 3}}

	res, err := WriteWorkbooks(path, nouns, config.DefaultCategories, false)
	if err != nil {
		t.Fatalf("WriteWorkbooks failed: %v", err)
	}
	if len(res.Sheets) != 1 || res.Sheets[0].Sheet != UncategorizedSheet {
		t.Errorf("Expected a single %q sheet, got %+v", UncategorizedSheet, res.Sheets)
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := make(map[string]bool)
	long := strings.Repeat("a", 31)

	if got := uniqueSheetName("misc", used); got != "misc" {
		t.Errorf("Expected misc, got %q", got)
	}
	if got := uniqueSheetName("MISC", used); got != "MISC (2)" {
		t.Errorf("Expected MISC (2), got %q", got)
	}
	uniqueSheetName(long, used)
	if got := uniqueSheetName(long, used); len([]rune(got)) != 31 || !strings.HasSuffix(got, " (2)") {
		t.Errorf("Expected a 31 character name ending in (2), got %q", got)
	}
}

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"codeberg.org/snonux/glossarymaker/internal/glossary"
)

// workbook wraps an excelize file whose first sheet has not been named yet
type workbook struct {
	file    *excelize.File
	sheets  int
	bold    int
	initial string
}

func newWorkbook() *workbook {
	f := excelize.NewFile()
	return &workbook{file: f, initial: f.GetSheetName(0), bold: -1}
}

func (w *workbook) close() {
	_ = w.file.Close()
}

// addSheet writes a header and one row per noun, with the header bold and frozen
func (w *workbook) addSheet(name string, header []string, nouns []glossary.Noun, withChinese, withCategory bool) error {
	f := w.file

	if w.sheets == 0 {
		if err := f.SetSheetName(w.initial, name); err != nil {
			return fmt.Errorf("naming sheet %q: %w", name, err)
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	w.sheets++

	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing header of %q: %w", name, err)
	}

	for i, n := range nouns {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(n, withChinese, withCategory)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("writing row %d of %q: %w", i+2, name, err)
		}
	}

	style, err := w.boldStyle()
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, style); err != nil {
		return fmt.Errorf("styling header of %q: %w", name, err)
	}

	if err := f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header of %q: %w", name, err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(name, "A", lastCol, 22)
}

func (w *workbook) boldStyle() (int, error) {
	if w.bold >= 0 {
		return w.bold, nil
	}
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("creating header style: %w", err)
	}
	w.bold = style
	return style, nil
}

func (w *workbook) save(path string) error {
	w.file.SetActiveSheet(0)
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

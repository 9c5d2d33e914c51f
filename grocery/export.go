package grocery

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Groceries"

// ExportXLSX writes the current list as a single-sheet workbook.
func (l *List) ExportXLSX(w io.Writer) error {
	return WriteXLSX(w, l.Items())
}

func WriteXLSX(w io.Writer, items []Item) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetRow("A1", []interface{}{"Item", "Checked", "Source"}); err != nil {
		return err
	}
	for i, it := range items {
		checked := "no"
		if it.Checked {
			checked = "yes"
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{it.Title, checked, it.Source}); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

package parser

import (
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/address"
	"github.com/xuri/excelize/v2"
)

// sheetBounds finds the last row and column holding a value by streaming the
// rows. The recorded <dimension> is not consulted: writers extend it over
// formatted but empty cells.
func sheetBounds(f *excelize.File, sheetName string) (address.Bounds, error) {
	rows, err := f.Rows(sheetName)
	if err != nil {
		return address.Bounds{}, err
	}
	defer rows.Close()

	var b address.Bounds
	rowNum := 0
	for rows.Next() {
		rowNum++
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return address.Bounds{}, err
		}
		if last := lastNonEmpty(cols); last > 0 {
			b.Rows = rowNum
			b.Cols = max(b.Cols, last)
		}
	}
	if err := rows.Error(); err != nil {
		return address.Bounds{}, err
	}
	return b, nil
}

// lastNonEmpty returns the 1-based position of the last non-empty cell, or 0.
func lastNonEmpty(cols []string) int {
	for i := len(cols) - 1; i >= 0; i-- {
		if cols[i] != "" {
			return i + 1
		}
	}
	return 0
}

package parser

import (
	"bytes"
	"fmt"
	"os"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/record"
	"github.com/shakinm/xlsReader/xls/structure"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/address"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
	"github.com/xuri/excelize/v2"
)

// openLegacyWorkbook parses a BIFF (.xls) workbook. The format has no
// row-level streaming, so the whole workbook is decoded up front.
func openLegacyWorkbook(path string) (xls.Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return xls.Workbook{}, err
	}
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return xls.Workbook{}, fmt.Errorf("opening xls workbook: %w", err)
	}
	return wb, nil
}

func legacySheetNames(path string) ([]string, error) {
	wb, err := openLegacyWorkbook(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, wb.GetNumberSheets())
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sheet, err := wb.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}
		names = append(names, sheet.GetName())
	}
	return names, nil
}

func openLegacySheet(path, sheetName string, rng address.Range) (*models.Table, error) {
	wb, err := openLegacyWorkbook(path)
	if err != nil {
		return nil, err
	}

	var grid []models.Row
	found := false
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sheet, err := wb.GetSheet(i)
		if err != nil || sheet == nil || sheet.GetName() != sheetName {
			continue
		}
		found = true
		for _, row := range sheet.GetRows() {
			grid = append(grid, xlsRowValues(&wb, row.GetCols()))
		}
		break
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	var bounds address.Bounds
	for i, cells := range grid {
		if last := lastUsed(cells); last > 0 {
			bounds.Rows = i + 1
			bounds.Cols = max(bounds.Cols, last)
		}
	}
	rng = rng.Clamp(bounds)
	if rng.Empty() {
		return &models.Table{Rows: models.NewSliceRows(nil), Used: bounds}, nil
	}

	width := rng.Width()
	header, err := sheetHeader(window(grid[rng.Start.Row-1], rng.Start.Col, width), rng.Start.Col)
	if err != nil {
		return nil, err
	}
	rows := make([]models.Row, 0, rng.Height()-1)
	for r := rng.Start.Row; r < rng.End.Row; r++ {
		rows = append(rows, window(grid[r], rng.Start.Col, width))
	}
	return &models.Table{Header: header, Rows: models.NewSliceRows(rows), Used: bounds}, nil
}

// xlsRowValues types the cells of a BIFF row from their record kind. Numbers
// formatted with a date format become dates (1900 date system).
func xlsRowValues(wb *xls.Workbook, cols []structure.CellData) models.Row {
	out := make(models.Row, len(cols))
	for i, col := range cols {
		switch c := col.(type) {
		case *record.Number, *record.Rk:
			num := c.GetFloat64()
			if xlsDateFormat(wb, c.GetXFIndex()) {
				if t, err := excelize.ExcelDateToTime(num, false); err == nil {
					out[i] = models.Date(t)
					continue
				}
			}
			out[i] = models.Number(num)
		case *record.BoolErr:
			switch s := c.GetString(); s {
			case "TRUE", "FALSE":
				out[i] = models.Boolean(s == "TRUE")
			default:
				out[i] = models.Text(s)
			}
		case *record.Blank, *record.FakeBlank:
		default:
			if s := col.GetString(); s != "" {
				out[i] = models.Text(s)
			}
		}
	}
	return out
}

func xlsDateFormat(wb *xls.Workbook, xfIndex int) (isDate bool) {
	// GetXFbyIndex indexes past the XF table of truncated workbooks.
	defer func() {
		if recover() != nil {
			isDate = false
		}
	}()
	xf := wb.GetXFbyIndex(xfIndex)
	id := xf.GetFormatIndex()
	if isDateNumFmt(id) {
		return true
	}
	if id < 164 {
		return false
	}
	format := wb.GetFormatByIndex(id)
	return isDateFormatCode(format.String())
}

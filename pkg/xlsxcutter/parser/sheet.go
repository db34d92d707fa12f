package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/address"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
	"github.com/xuri/excelize/v2"
)

// SheetOptions tunes how a worksheet table is located.
type SheetOptions struct {
	// UsePrintArea replaces the requested range with the sheet's print area
	// when one is defined.
	UsePrintArea bool
}

// OpenSheet opens the table found in rng on the named worksheet. The first
// row of the resolved range is the header; the remaining rows are streamed
// lazily through the returned table, which the caller must Close.
func OpenSheet(path, sheetName string, rng address.Range, opts SheetOptions) (*models.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return openWorkbookSheet(path, sheetName, rng, opts)
	case ".xls":
		return openLegacySheet(path, sheetName, rng)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, filepath.Base(path))
	}
}

// SheetNames lists the worksheets of a workbook in tab order.
func SheetNames(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return legacySheetNames(path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func openWorkbookSheet(path, sheetName string, rng address.Range, opts SheetOptions) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	table, err := readSheetTable(f, sheetName, rng, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return table, nil
}

func readSheetTable(f *excelize.File, sheetName string, rng address.Range, opts SheetOptions) (*models.Table, error) {
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}
	if opts.UsePrintArea {
		if area, ok := printArea(f, sheetName); ok {
			rng = area
		}
	}
	bounds, err := sheetBounds(f, sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading bounds of sheet %q: %w", sheetName, err)
	}
	rng = rng.Clamp(bounds)
	if rng.Empty() {
		f.Close()
		return &models.Table{Rows: models.NewSliceRows(nil), Used: bounds}, nil
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("opening rows of sheet %q: %w", sheetName, err)
	}
	it := &sheetRows{
		file:      f,
		sheet:     sheetName,
		rows:      rows,
		rng:       rng,
		width:     rng.Width(),
		dateStyle: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		it.date1904 = *props.Date1904
	}

	headerRow, err := it.read(rng.Start.Row)
	if err != nil {
		rows.Close()
		return nil, err
	}
	header, err := sheetHeader(headerRow, rng.Start.Col)
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &models.Table{Header: header, Rows: it, Used: bounds}, nil
}

// sheetRows streams the data rows of a resolved range.
type sheetRows struct {
	file      *excelize.File
	sheet     string
	rows      *excelize.Rows
	rng       address.Range
	width     int
	rowNum    int
	date1904  bool
	dateStyle map[int]bool
	current   models.Row
	err       error
}

// advanceTo moves the underlying iterator to sheet row target and returns its
// raw cell values. Rows missing from the sheet come back empty.
func (s *sheetRows) advanceTo(target int) ([]string, error) {
	for s.rowNum < target {
		if !s.rows.Next() {
			if err := s.rows.Error(); err != nil {
				return nil, err
			}
			s.rowNum = target
			return nil, nil
		}
		s.rowNum++
	}
	return s.rows.Columns(excelize.Options{RawCellValue: true})
}

// read returns the typed cells of sheet row target inside the range columns.
func (s *sheetRows) read(target int) (models.Row, error) {
	cells, err := s.advanceTo(target)
	if err != nil {
		return nil, err
	}
	row := make(models.Row, s.width)
	for i, raw := range window(cells, s.rng.Start.Col, s.width) {
		if raw == "" {
			continue
		}
		v, err := s.cell(s.rng.Start.Col+i, target, raw)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

// cell types one non-empty raw value using the stored cell type and, for
// numbers, the number format of the cell style.
func (s *sheetRows) cell(col, row int, raw string) (models.Value, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Value{}, err
	}
	typ, err := s.file.GetCellType(s.sheet, ref)
	if err != nil {
		return models.Value{}, err
	}
	isDate := false
	if typ == excelize.CellTypeUnset || typ == excelize.CellTypeNumber {
		if isDate, err = s.isDateCell(ref); err != nil {
			return models.Value{}, err
		}
	}
	return sheetCell(raw, typ, isDate, s.date1904), nil
}

func (s *sheetRows) isDateCell(ref string) (bool, error) {
	styleID, err := s.file.GetCellStyle(s.sheet, ref)
	if err != nil || styleID == 0 {
		return false, err
	}
	if isDate, ok := s.dateStyle[styleID]; ok {
		return isDate, nil
	}
	style, err := s.file.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	isDate := isDateNumFmt(style.NumFmt)
	if style.CustomNumFmt != nil {
		isDate = isDateFormatCode(*style.CustomNumFmt)
	}
	s.dateStyle[styleID] = isDate
	return isDate, nil
}

func (s *sheetRows) Next() bool {
	if s.err != nil || s.rowNum >= s.rng.End.Row {
		return false
	}
	row, err := s.read(s.rowNum + 1)
	if err != nil {
		s.err = fmt.Errorf("reading row %d: %w", s.rowNum, err)
		return false
	}
	s.current = row
	return true
}

func (s *sheetRows) Row() models.Row { return s.current }

func (s *sheetRows) Err() error { return s.err }

func (s *sheetRows) Close() error {
	err := s.rows.Close()
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}

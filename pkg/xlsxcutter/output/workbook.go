package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/UNO-SOFT/spreadsheet"
	"github.com/UNO-SOFT/spreadsheet/ods"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
	"github.com/xuri/excelize/v2"
)

// maxSheetNameLen is the sheet name limit shared by xlsx and ods.
const maxSheetNameLen = 31

// Workbook accumulates sheets and writes the finished document on Close.
type Workbook interface {
	// AddSheet appends a sheet holding header in row 1 and rows below it.
	AddSheet(name string, header []string, rows []models.Row) error
	// Close writes the document to the underlying writer. Calls after the
	// first do nothing.
	Close() error
}

// NewWorkbook returns a multi-sheet workbook writer for an xlsx or ods
// document.
func NewWorkbook(f Format, w io.Writer) (Workbook, error) {
	switch f {
	case FormatXLSX:
		return &xlsxWorkbook{file: excelize.NewFile(), w: w}, nil
	case FormatODS:
		sw, err := ods.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return &odsWorkbook{w: sw}, nil
	default:
		return nil, &UnsupportedFormatError{Format: f}
	}
}

// SheetName truncates name to the spreadsheet sheet name limit.
func SheetName(name string) string {
	if utf8.RuneCountInString(name) <= maxSheetNameLen {
		return name
	}
	return string([]rune(name)[:maxSheetNameLen])
}

type xlsxWorkbook struct {
	file   *excelize.File
	w      io.Writer
	sheets int
	closed bool
}

func (x *xlsxWorkbook) AddSheet(name string, header []string, rows []models.Row) error {
	name = SheetName(name)
	if x.sheets == 0 {
		// NewFile starts with a default sheet; reuse it for the first one.
		if err := x.file.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	} else if _, err := x.file.NewSheet(name); err != nil {
		return err
	}
	x.sheets++

	sw, err := x.file.NewStreamWriter(name)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := sw.SetRow("A1", cells); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, xlsxValues(row)); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", name, i+2, err)
		}
	}
	return sw.Flush()
}

func (x *xlsxWorkbook) Close() error {
	if x.closed {
		return nil
	}
	x.closed = true
	defer x.file.Close()
	_, err := x.file.WriteTo(x.w)
	return err
}

func xlsxValues(row models.Row) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		switch v.Kind {
		case models.KindNumber:
			if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
				continue
			}
			out[i] = v.Num
		case models.KindText:
			out[i] = v.Str
		case models.KindBoolean:
			out[i] = v.Bool
		case models.KindDate:
			out[i] = v.Time
		}
	}
	return out
}

type odsWorkbook struct {
	w      spreadsheet.Writer
	closed bool
}

func (o *odsWorkbook) AddSheet(name string, header []string, rows []models.Row) error {
	cols := make([]spreadsheet.Column, len(header))
	for i, h := range header {
		cols[i].Name = h
		cols[i].Header.FontBold = true
	}
	sheet, err := o.w.NewSheet(SheetName(name), cols)
	if err != nil {
		return err
	}
	values := make([]any, len(header))
	for i, row := range rows {
		for j := range values {
			values[j] = odsValue(row, j)
		}
		if err := sheet.AppendRow(values...); err != nil {
			sheet.Close()
			return fmt.Errorf("sheet %q row %d: %w", name, i+2, err)
		}
	}
	return sheet.Close()
}

func (o *odsWorkbook) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	return o.w.Close()
}

func odsValue(row models.Row, i int) any {
	if i >= len(row) {
		return ""
	}
	v := row[i]
	switch v.Kind {
	case models.KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return ""
		}
		return spreadsheet.Number(strconv.FormatFloat(v.Num, 'f', -1, 64))
	case models.KindBoolean:
		return v.Bool
	case models.KindDate:
		return v.Time
	default:
		return v.String()
	}
}

// WorkbookWriter writes each chunk as a workbook holding a single sheet.
type WorkbookWriter struct {
	format Format
}

// NewWorkbookWriter returns the chunk writer for an xlsx or ods format.
func NewWorkbookWriter(f Format) WorkbookWriter {
	return WorkbookWriter{format: f}
}

func (ww WorkbookWriter) Format() Format { return ww.format }

func (ww WorkbookWriter) WriteChunk(w io.Writer, sheet string, c models.Chunk) error {
	wb, err := NewWorkbook(ww.format, w)
	if err != nil {
		return err
	}
	if err := wb.AddSheet(sheet, c.Header, c.Rows); err != nil {
		wb.Close()
		return err
	}
	return wb.Close()
}

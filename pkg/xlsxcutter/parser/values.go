// Package parser reads tables from worksheets and flat record files.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
	"github.com/xuri/excelize/v2"
)

// isoLayouts are tried in order for cells stored with the ISO-8601 date type.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05Z",
	"2006-01-02 15:04:05",
	models.DateLayout,
}

// sheetCell converts the raw stored value of a worksheet cell into a typed
// value. The cell type decides between text, booleans and numbers; numbers
// whose number format is a date become dates.
func sheetCell(raw string, typ excelize.CellType, dateFormat, date1904 bool) models.Value {
	if raw == "" {
		return models.Empty()
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return models.Text(raw)
	case excelize.CellTypeBool:
		switch raw {
		case "1", "TRUE", "true":
			return models.Boolean(true)
		case "0", "FALSE", "false":
			return models.Boolean(false)
		}
		return models.Text(raw)
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return models.Date(t)
		}
		return models.Text(raw)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return models.Text(raw)
		}
		if dateFormat {
			if t, err := excelize.ExcelDateToTime(f, date1904); err == nil {
				return models.Date(t)
			}
		}
		return models.Number(f)
	default:
		return models.Text(raw)
	}
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isDateNumFmt reports whether a built-in number format id renders dates or
// times. 27-36 and 50-58 are the East Asian locale date formats.
func isDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom number format code contains date
// or time tokens once literals and bracketed sections are skipped.
func isDateFormatCode(code string) bool {
	// only the first section formats positive numbers
	code, _, _ = strings.Cut(code, ";")
	inQuote := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '\\' || c == '_' || c == '*':
			i++
		case c == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			switch strings.ToLower(code[i+1 : i+end]) {
			case "h", "hh", "m", "mm", "s", "ss":
				return true
			}
			i += end
		default:
			switch c | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

// parseField converts a flat-file field into a typed value. Numbers are only
// recognised when formatting them back reproduces the field exactly, so
// identifiers such as "00123" survive as text.
func parseField(s string) models.Value {
	if s == "" {
		return models.Empty()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return models.Number(f)
	}
	switch strings.ToLower(s) {
	case "true":
		return models.Boolean(true)
	case "false":
		return models.Boolean(false)
	}
	return models.Text(s)
}

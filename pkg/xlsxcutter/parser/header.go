package parser

import (
	"strings"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/address"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
)

// sheetHeader turns the cells of a worksheet header row into column names.
// cells[i] sits in sheet column firstCol+i. Names are trimmed and must be
// non-blank and unique.
func sheetHeader(cells models.Row, firstCol int) ([]string, error) {
	header := make([]string, len(cells))
	seen := make(map[string]string, len(cells))
	for i, cell := range cells {
		column := address.ColumnLetters(firstCol + i)
		name := strings.TrimSpace(cell.String())
		if name == "" {
			return nil, &HeaderError{Column: column, Reason: "header cells must not be blank"}
		}
		if prev, ok := seen[name]; ok {
			return nil, &HeaderError{Column: column, Name: name, Reason: "duplicates column " + prev}
		}
		seen[name] = column
		header[i] = name
	}
	return header, nil
}

// window copies the cells of a row that fall in columns [firstCol, firstCol+width)
// and pads missing cells with the zero value.
func window[T any](cols []T, firstCol, width int) []T {
	out := make([]T, width)
	start := firstCol - 1
	for i := 0; i < width && start+i < len(cols); i++ {
		out[i] = cols[start+i]
	}
	return out
}

// lastUsed returns the 1-based position of the last non-empty value, or 0.
func lastUsed(row models.Row) int {
	for i := len(row) - 1; i >= 0; i-- {
		if !row[i].IsEmpty() {
			return i + 1
		}
	}
	return 0
}

package output

import (
	"encoding/csv"
	"io"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
)

// CSVWriter writes a chunk as a header record followed by one record per
// row. Numbers use their shortest decimal form, booleans TRUE/FALSE, dates
// ISO-8601 and empty cells an empty field.
type CSVWriter struct{}

func (CSVWriter) Format() Format { return FormatCSV }

func (CSVWriter) WriteChunk(w io.Writer, _ string, c models.Chunk) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(c.Header); err != nil {
		return err
	}
	for _, row := range c.Rows {
		if err := cw.Write(row.Strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

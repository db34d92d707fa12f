package output

import (
	"bytes"
	"encoding/json"
	"io"
	"math"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
)

// JSONWriter writes a chunk as an indented array of objects whose keys
// follow the header order.
type JSONWriter struct{}

func (JSONWriter) Format() Format { return FormatJSON }

func (JSONWriter) WriteChunk(w io.Writer, _ string, c models.Chunk) error {
	records := make([]record, len(c.Rows))
	for i, row := range c.Rows {
		records[i] = record{header: c.Header, row: row}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// record marshals one row as an object with keys in header order.
type record struct {
	header []string
	row    models.Row
}

func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.header {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeCompact(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		var v models.Value
		if i < len(r.row) {
			v = r.row[i]
		}
		if err := encodeCompact(&buf, jsonCell(v)); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeCompact(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// jsonCell maps a value to its JSON representation. Empty cells and
// non-finite numbers become null, dates ISO-8601 strings.
func jsonCell(v models.Value) any {
	switch v.Kind {
	case models.KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return nil
		}
		return v.Num
	case models.KindText:
		return v.Str
	case models.KindBoolean:
		return v.Bool
	case models.KindDate:
		return models.FormatDate(v.Time)
	default:
		return nil
	}
}

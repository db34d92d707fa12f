package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
)

// jsonObject keeps the members of a JSON object in document order.
type jsonObject struct {
	keys   []string
	values map[string]any
}

func openJSON(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeJSONTable(f)
}

// decodeJSONTable accepts either an array of objects or an object carrying
// "header" and "rows" members.
func decodeJSONTable(r io.Reader) (*models.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty document", ErrUnsupportedJSONShape)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	switch tok {
	case json.Delim('['):
		return decodeRecords(dec)
	case json.Delim('{'):
		obj, err := decodeObjectBody(dec)
		if err != nil {
			return nil, err
		}
		return headerRowsTable(obj)
	default:
		return nil, fmt.Errorf("%w: top-level value must be an array of objects or a header/rows object", ErrUnsupportedJSONShape)
	}
}

// decodeRecords reads the elements of an array of objects. The header is the
// union of keys in first-seen order; missing keys become empty cells.
func decodeRecords(dec *json.Decoder) (*models.Table, error) {
	var (
		header  []string
		index   = make(map[string]int)
		objects []jsonObject
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing json record %d: %w", len(objects)+1, err)
		}
		if tok != json.Delim('{') {
			return nil, fmt.Errorf("%w: array element %d is not an object", ErrUnsupportedJSONShape, len(objects)+1)
		}
		obj, err := decodeObjectBody(dec)
		if err != nil {
			return nil, fmt.Errorf("parsing json record %d: %w", len(objects)+1, err)
		}
		for _, k := range obj.keys {
			if _, ok := index[k]; !ok {
				index[k] = len(header)
				header = append(header, k)
			}
		}
		objects = append(objects, obj)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}

	rows := make([]models.Row, len(objects))
	for i, obj := range objects {
		row := make(models.Row, len(header))
		for j, name := range header {
			row[j] = jsonValue(obj.values[name])
		}
		rows[i] = row
	}
	return &models.Table{Header: header, Rows: models.NewSliceRows(rows)}, nil
}

// decodeObjectBody reads object members after the opening brace has been
// consumed, through the closing brace.
func decodeObjectBody(dec *json.Decoder) (jsonObject, error) {
	obj := jsonObject{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return jsonObject{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return jsonObject{}, fmt.Errorf("unexpected token %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return jsonObject{}, err
		}
		if _, dup := obj.values[key]; !dup {
			obj.keys = append(obj.keys, key)
		}
		obj.values[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return jsonObject{}, err
	}
	return obj, nil
}

func headerRowsTable(obj jsonObject) (*models.Table, error) {
	rawHeader, okHeader := obj.values["header"].([]any)
	rawRows, okRows := obj.values["rows"].([]any)
	if !okHeader || !okRows {
		return nil, fmt.Errorf("%w: object must carry a \"header\" array and a \"rows\" array", ErrUnsupportedJSONShape)
	}

	header := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		name, ok := h.(string)
		if !ok {
			return nil, fmt.Errorf("%w: header entry %d is not a string", ErrUnsupportedJSONShape, i+1)
		}
		header[i] = name
	}

	rows := make([]models.Row, len(rawRows))
	for i, raw := range rawRows {
		// record 1 is the header
		record := i + 2
		cells, ok := raw.([]any)
		if !ok {
			return nil, &MalformedRowError{Record: record, Err: errors.New("row is not an array")}
		}
		if len(cells) != len(header) {
			return nil, &MalformedRowError{
				Record: record,
				Err:    fmt.Errorf("expected %d fields, got %d", len(header), len(cells)),
			}
		}
		row := make(models.Row, len(cells))
		for j, c := range cells {
			row[j] = jsonValue(c)
		}
		rows[i] = row
	}
	return &models.Table{Header: header, Rows: models.NewSliceRows(rows)}, nil
}

// jsonValue maps a decoded JSON value onto a cell value. Nested arrays and
// objects are kept as their JSON text.
func jsonValue(v any) models.Value {
	switch x := v.(type) {
	case nil:
		return models.Empty()
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return models.Number(f)
		}
		return models.Text(x.String())
	case string:
		return models.Text(x)
	case bool:
		return models.Boolean(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return models.Text(fmt.Sprint(x))
		}
		return models.Text(string(b))
	}
}

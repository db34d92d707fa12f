package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

const utf8BOM = "\ufeff"

func openCSV(path string, opts FlatOptions) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := decodeCharset(f, opts.Charset)
	if err != nil {
		f.Close()
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	it := &csvRows{file: f, reader: cr}
	record, err := it.read()
	if errors.Is(err, io.EOF) {
		f.Close()
		return &models.Table{Rows: models.NewSliceRows(nil)}, nil
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	header := make([]string, len(record))
	copy(header, record)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	it.width = len(header)
	return &models.Table{Header: header, Rows: it}, nil
}

// decodeCharset wraps r with a decoder for the named charset. Empty and UTF-8
// names pass r through.
func decodeCharset(r io.Reader, name string) (io.Reader, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// csvRows streams CSV records, checking each against the header width.
type csvRows struct {
	file    *os.File
	reader  *csv.Reader
	width   int
	record  int
	current models.Row
	err     error
}

func (c *csvRows) read() ([]string, error) {
	record, err := c.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, err
	}
	c.record++
	if err != nil {
		return nil, &MalformedRowError{Record: c.record, Err: err}
	}
	return record, nil
}

func (c *csvRows) Next() bool {
	if c.err != nil {
		return false
	}
	record, err := c.read()
	if errors.Is(err, io.EOF) {
		return false
	}
	if err != nil {
		c.err = err
		return false
	}
	if len(record) != c.width {
		c.err = &MalformedRowError{
			Record: c.record,
			Err:    fmt.Errorf("expected %d fields, got %d", c.width, len(record)),
		}
		return false
	}
	row := make(models.Row, len(record))
	for i, field := range record {
		row[i] = parseField(field)
	}
	c.current = row
	return true
}

func (c *csvRows) Row() models.Row { return c.current }

func (c *csvRows) Err() error { return c.err }

func (c *csvRows) Close() error { return c.file.Close() }

package models

import "github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/address"

// Row is one record, always as wide as its table's header.
type Row []Value

// Strings renders every value of the row as text.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.String()
	}
	return out
}

// RowIterator yields data rows one at a time, in source order. It is single
// pass: once Next returns false the iterator is exhausted and Err reports
// whether it stopped because of a failure.
type RowIterator interface {
	Next() bool
	Row() Row
	Err() error
	Close() error
}

// Table is a header plus a lazy sequence of rows.
type Table struct {
	// Header names each column.
	Header []string
	// Rows yields the data rows (header excluded).
	Rows RowIterator
	// Used is the populated area of the source worksheet; zero for flat
	// sources.
	Used address.Bounds
}

// Close releases the resources held by the row sequence.
func (t *Table) Close() error {
	if t == nil || t.Rows == nil {
		return nil
	}
	return t.Rows.Close()
}

// SliceRows is a RowIterator over rows already held in memory.
type SliceRows struct {
	rows []Row
	pos  int
}

// NewSliceRows returns an iterator over rows.
func NewSliceRows(rows []Row) *SliceRows {
	return &SliceRows{rows: rows, pos: -1}
}

func (s *SliceRows) Next() bool {
	if s.pos+1 >= len(s.rows) {
		s.pos = len(s.rows)
		return false
	}
	s.pos++
	return true
}

func (s *SliceRows) Row() Row {
	if s.pos < 0 || s.pos >= len(s.rows) {
		return nil
	}
	return s.rows[s.pos]
}

func (s *SliceRows) Err() error   { return nil }
func (s *SliceRows) Close() error { return nil }

package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrSheetNotFound indicates the requested worksheet is not in the workbook.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrUnsupportedSource indicates a source file extension no reader handles.
	ErrUnsupportedSource = errors.New("unsupported source format")
	// ErrInvalidHeader indicates a blank or duplicated header cell.
	ErrInvalidHeader = errors.New("invalid header")
	// ErrMalformedRow indicates a flat record that does not fit the header.
	ErrMalformedRow = errors.New("malformed row")
	// ErrUnsupportedJSONShape indicates a JSON document that is neither an
	// array of objects nor a header/rows object.
	ErrUnsupportedJSONShape = errors.New("unsupported json shape")
)

// HeaderError reports the header cell that failed validation.
type HeaderError struct {
	// Column is the sheet column letter of the offending cell.
	Column string
	// Name is the trimmed cell text (empty for blank cells).
	Name   string
	Reason string
}

func (e *HeaderError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid header in column %s: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("invalid header %q in column %s: %s", e.Name, e.Column, e.Reason)
}

func (e *HeaderError) Unwrap() error {
	return ErrInvalidHeader
}

// MalformedRowError identifies a structurally broken record by its 1-based
// record number; the header is record 1.
type MalformedRowError struct {
	Record int
	Err    error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row at record %d: %v", e.Record, e.Err)
}

// Unwrap exposes both ErrMalformedRow and the underlying cause.
func (e *MalformedRowError) Unwrap() []error {
	return []error{ErrMalformedRow, e.Err}
}
